package repository

import "time"

// storedTimeLayout has a fixed width so stored timestamps sort correctly
// as text.
const storedTimeLayout = "2006-01-02T15:04:05.000000Z"

func formatStoredTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(storedTimeLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

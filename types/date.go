package types

import "time"

const dateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component. Unlike
// time.Time it parses strictly from the ISO-8601 date form "2006-01-02".
type Date time.Time

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, err
	}

	return Date(t), nil
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) String() string { return time.Time(d).Format(dateLayout) }

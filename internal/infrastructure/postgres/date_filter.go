package postgres

import "strconv"

// TimeZone is the fixed zone in which "local" calendar dates are
// interpreted. The assistant serves a single household in Brazil; every
// date argument means a day in this zone, regardless of where the server
// runs.
const TimeZone = "America/Sao_Paulo"

// localDay renders the SQL expression for the local calendar date of a
// timestamptz column. The zone conversion must happen before taking the
// date component: date(occurred_at) alone would bucket late-evening rows
// into the next UTC day.
func localDay(column string) string {
	return "(" + column + " AT TIME ZONE '" + TimeZone + "')::date"
}

// dayEquals renders an exact local-day predicate bound to placeholder pos.
func dayEquals(column string, pos int) string {
	return localDay(column) + " = $" + strconv.Itoa(pos)
}

// dayOnOrAfter and dayOnOrBefore render the two inclusive bounds of a
// local-day range.
func dayOnOrAfter(column string, pos int) string {
	return localDay(column) + " >= $" + strconv.Itoa(pos)
}

func dayOnOrBefore(column string, pos int) string {
	return localDay(column) + " <= $" + strconv.Itoa(pos)
}

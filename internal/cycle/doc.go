// Package cycle maps a cycle profile (last period start, cycle length,
// period length) to a day of cycle, a phase and a forecast of future days.
//
// Every function is pure: callers pass "today" explicitly and receive a
// freshly built value. Nothing in this package performs I/O or keeps state.
//
//	profile := cycle.Profile{CycleLength: 28, PeriodLength: 5, LastPeriodStart: start}
//	today := cycle.TodayInfo(profile, time.Now())
//	days := cycle.Forecast(profile, time.Now(), 30)
package cycle

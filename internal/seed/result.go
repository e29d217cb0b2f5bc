// Package seed provides database upsert orchestration for Sleeper league data.
package seed

import "fmt"

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	LeaguesUpserted  int
	UsersUpserted    int
	RostersUpserted  int
	MatchupsUpserted int
	PlayersUpserted  int
	WeeksSynced      int
	Errors           []string
}

// Add merges another SeedResult into this one.
func (r *SeedResult) Add(other SeedResult) {
	r.LeaguesUpserted += other.LeaguesUpserted
	r.UsersUpserted += other.UsersUpserted
	r.RostersUpserted += other.RostersUpserted
	r.MatchupsUpserted += other.MatchupsUpserted
	r.PlayersUpserted += other.PlayersUpserted
	r.WeeksSynced += other.WeeksSynced
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *SeedResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// OK reports whether the operation finished without recorded errors.
func (r *SeedResult) OK() bool {
	return len(r.Errors) == 0
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf(
		"leagues=%d users=%d rosters=%d matchups=%d players=%d weeks=%d errors=%d",
		r.LeaguesUpserted, r.UsersUpserted, r.RostersUpserted,
		r.MatchupsUpserted, r.PlayersUpserted, r.WeeksSynced,
		len(r.Errors),
	)
}

package analytics

// Reconcile folds decided matchups into head-to-head records. The higher
// score wins; equal scores count as a tie for both teams. A pair naming the
// same team twice is not a game and is skipped.
func Reconcile(pairs []PairedMatchup) ActualRecords {
	records := make(ActualRecords)
	for _, p := range pairs {
		if p.TeamA == p.TeamB {
			continue
		}
		a, b := records[p.TeamA], records[p.TeamB]
		switch {
		case p.PointsA > p.PointsB:
			a.Wins++
			b.Losses++
		case p.PointsB > p.PointsA:
			b.Wins++
			a.Losses++
		default:
			a.Ties++
			b.Ties++
		}
		records[p.TeamA], records[p.TeamB] = a, b
	}
	return records
}

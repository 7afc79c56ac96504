package pack

import "github.com/davecgh/go-spew/spew"

// Dump renders s as a deeply-expanded struct tree, for the --verbose output
// logged after a write. Generalizes the ad-hoc Sprintf struct dump the teacher writes by
// hand in nesrom.ROM.String to a struct with slice and array fields too
// deep to hand-format legibly.
func (s *Stats) Dump() string {
	return spew.Sdump(s)
}

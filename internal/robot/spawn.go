package robot

// Spawn returns count actors built from template: the template itself, with its
// track cleared, followed by count-1 clones. No two actors share keyframe state.
// A count below one still returns the template.
func Spawn(template *Actor, count int) []*Actor {
	template.track = Track{}
	actors := make([]*Actor, 0, max(count, 1))
	actors = append(actors, template)
	for i := 1; i < count; i++ {
		actors = append(actors, template.Clone())
	}
	return actors
}

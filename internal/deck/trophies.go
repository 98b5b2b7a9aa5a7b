package deck

// TrophyAdvice returns the canned tip for a trophy range.
func TrophyAdvice(trophies int) string {
	switch {
	case trophies < 3000:
		return "Learn one deck well. Keep a clear win condition and two spells, and defend before you attack."
	case trophies < 4000:
		return "Stay around 3.2–3.8 elixir and keep a building ready for Hog Rider and Royal Giant."
	case trophies < 5000:
		return "Punish heavy pushes at the bridge and track which spell your opponent has cycled."
	default:
		return "Count elixir and cycle. Small positive trades decide matches at this level."
	}
}

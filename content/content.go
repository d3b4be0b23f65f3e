// Package content holds the MindPlanet course material: the three learning
// modules, the mood-weather vocabulary and the support-orbit map, plus the
// interactive pieces (4-7-8 breathing guide, resilience quiz) the pages
// are built around.
package content

// Slide is one card of a module's deck.
type Slide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Why     string `json:"why"` // the psycho-education note under the slide
}

// Module is a course chapter.
type Module struct {
	ID      string  `json:"id"`
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	Tagline string  `json:"tagline"`
	Slides  []Slide `json:"slides,omitempty"`
}

// Mood is one entry of the internal-weather check-in.
type Mood struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// OrbitNode is one satellite of the support-orbit map. Orbit 0 is the
// planet core (the student themselves); higher rings are further out.
type OrbitNode struct {
	Label       string `json:"label"`
	Orbit       int    `json:"orbit"`
	Description string `json:"description"`
}

var modules = []Module{
	{
		ID:      "weather",
		Number:  1,
		Title:   "Identify Your Weather: Deconstructing the Masks",
		Tagline: "Accurately recognize physical and mental stress signals.",
		Slides: []Slide{
			{
				Title:   "The Masks of Stress",
				Content: "Why do you feel tired even when you aren't doing 'anything'?\n\nStress doesn't always look like 'being busy'. It wears masks like procrastination, anger, or even deep fatigue. Identifying the mask is the first step to taking it off.",
				Why:     "Psycho-education: Labeling an emotion reduces its power over you. It moves the processing from the emotional amygdala to the rational prefrontal cortex.",
			},
			{
				Title:   "The Anxiety Alarm",
				Content: "Mask: Over-worrying & Brain Loops.\n\nAnxiety is your planet's internal alarm system being stuck in 'ON'. It's trying to protect you from future threats, but it's wasting your energy today.",
				Why:     "Insight: Understanding anxiety as a protective mechanism gone into overdrive helps reduce self-blame.",
			},
			{
				Title:   "The Depressive Fog",
				Content: "Mask: Loss of Interest & 'Laziness'.\n\nWhen stress becomes chronic, your planet enters 'Power Save Mode'. You aren't lazy; your emotional battery is simply empty and needs a recharge.",
				Why:     "Self-Compassion: Understanding that withdrawal is a survival strategy, not a failure, is key to starting the recovery process.",
			},
			{
				Title:   "Learned Helplessness",
				Content: "Mask: 'What's the point?'.\n\nRepeated academic setbacks can make you feel like your effort doesn't matter. This is a cognitive trap. Your actions STILL have power, even if they feel small.",
				Why:     "Empowerment: Breaking the cycle of 'effort is useless' through small, manageable wins allows you to rebuild confidence.",
			},
			{
				Title:   "Recognition = Recovery",
				Content: "The path home: Acceptance.\n\nOnce you see the mask, you can say: 'I see you, Anxiety.' Now, you can use your tools—like breathing or social connection—to begin true healing.",
				Why:     "Action: Moving from passive suffering to active management starts with simple recognition of the current state.",
			},
		},
	},
	{
		ID:      "toolbox",
		Number:  2,
		Title:   "The Mind Toolbox",
		Tagline: "Equipping your planet with advanced stabilization tech.",
		Slides: []Slide{
			{
				Title:   "Vagus Nerve Stimulation",
				Content: "The 4-7-8 technique acts like a hack for your nervous system. Long exhalations tell your brain that you are safe, switching off the \"fight or flight\" response.",
			},
			{
				Title:   "Mental Anchoring",
				Content: "By counting and focusing on the physical sensation of breath, you pull your mind away from ruminating thoughts and back into the present moment.",
			},
		},
	},
	{
		ID:      "support",
		Number:  3,
		Title:   "The Support Orbit",
		Tagline: "No planet exists in isolation. Map your network of stars.",
		Slides: []Slide{
			{
				Title:   "Healthy Boundaries",
				Content: "Your orbit has limited space. It's okay to say 'no' to things that drain your planet's atmosphere. Protect your core energy first.",
			},
			{
				Title:   "Safe Moons",
				Content: "Identify at least three people who listen without judging. These are your \"Safe Moons\" during cosmic storms.",
			},
		},
	},
}

var moods = []Mood{
	{ID: "sunny", Label: "Radiant", Description: "Feeling confident and energized."},
	{ID: "cloudy", Label: "Balanced", Description: "Steady but a bit quiet today."},
	{ID: "rainy", Label: "Heavy", Description: "Feeling overwhelmed or sad."},
	{ID: "stormy", Label: "Turbulent", Description: "Anxious or frustrated right now."},
	{ID: "foggy", Label: "Misty", Description: "Confused or physically exhausted."},
}

var orbitNodes = []OrbitNode{
	{Label: "Self-Care", Orbit: 0, Description: "The Planet Core. Your own habits, sleep, and kindness to yourself."},
	{Label: "Family", Orbit: 1, Description: "Your primary support. Those who know your journey from the start."},
	{Label: "Friends", Orbit: 2, Description: "The shared orbit. Peer support who understand your daily atmospheric pressure."},
	{Label: "Mentors", Orbit: 2, Description: "Guides who help you navigate the gravity of school and future goals."},
	{Label: "Professional", Orbit: 3, Description: "Expert navigators like counselors for when the space weather gets extreme."},
}

// Modules returns the course modules in order.
func Modules() []Module {
	return modules
}

// Moods returns the internal-weather check-in entries.
func Moods() []Mood {
	return moods
}

// Orbit returns the support-orbit map, core first.
func Orbit() []OrbitNode {
	return orbitNodes
}

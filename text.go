package main

var (
	HeroName    = "Anjali Sharma"
	HeroTitle   = "Frontend & Full-Stack Developer"
	HeroTagline = `I build fast, accessible web apps and enjoy turning rough ideas into
	polished products people actually like using.`

	AboutMe = `I'm a developer who cares about clean interfaces and the plumbing behind them.
	Most of my work starts as a small experiment, a new library or an unfamiliar API, and grows
	into something I can ship. Outside of code I'm usually reading, sketching layouts, or
	picking up whatever tool caught my eye this week.`

	TechStack = []string{
		"JavaScript", "React", "Tailwind CSS", "Node.js", "Express",
		"MongoDB", "Go", "Git", "Figma",
	}

	Projects = []Project{
		{
			Title:       "Portfolio",
			Description: `This site: server-rendered with Go and Gin, HTMX for the contact form, and a relay for messages so there is no mail server to run.`,
			Tech:        []string{"Go", "Gin", "HTMX"},
			Link:        "https://github.com/AnjaliSharma2212",
		},
		{
			Title:       "Task Board",
			Description: `A drag-and-drop kanban board with offline support and sync once the connection comes back.`,
			Tech:        []string{"React", "IndexedDB"},
		},
		{
			Title:       "Recipe Finder",
			Description: `Search recipes by what is already in the fridge, with filters for diet and cooking time.`,
			Tech:        []string{"React", "Express", "MongoDB"},
		},
	}

	GitHubUser = "AnjaliSharma2212"

	ContactPhone    = "+91 6005377803"
	ContactEmail    = "anjalivce19@gmail.com"
	ContactLinkedIn = "https://www.linkedin.com/in/anjalisharma042"
	ContactGitHub   = "https://github.com/AnjaliSharma2212"

	FooterText = "Built with Go, Gin and HTMX."
)

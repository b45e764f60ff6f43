package content

import "github.com/aryannaik/foundation-site/internal/index"

// Pages lists every page that contributes search sections. A new page takes
// part in search by adding its provider here.
func Pages() []index.Provider {
	return []index.Provider{
		{Name: "home", Sections: homeSections},
		{Name: "technology", Sections: technologySections},
		{Name: "ecosystem", Sections: ecosystemSections},
		{Name: "community", Sections: communitySections},
		{Name: "faq", Sections: faqSections},
		{Name: "about", Sections: aboutSections},
		{Name: "api", Sections: apiSections},
		{Name: "roadmap", Sections: roadmapSections},
	}
}

var homeSections = []index.Section{
	{
		ID:       "home-hero",
		Title:    "Meridian Foundation",
		Subtitle: "Stewarding an open, fast-finality network for everyone.",
		Category: "Home",
		Badge:    "Page",
		Href:     "/",
		Keywords: index.Keywords{"home", "blockchain", "foundation"},
	},
	{
		Title:    "Get Started",
		Subtitle: "Run a node, build an app or join the community.",
		Category: "Home",
		Href:     "/#get-started",
		Keywords: index.Keywords{"start", "onboarding"},
	},
	{
		Title:    "Network Stats",
		Subtitle: "Live validator count, block time and finality.",
		Category: "Home",
		Href:     "/#stats",
	},
}

var technologySections = []index.Section{
	{
		Title:    "Technology Overview",
		Subtitle: "How the protocol reaches consensus, executes and scales.",
		Category: "Technology",
		Badge:    "Page",
		Href:     "/technology",
		Keywords: index.Keywords{"protocol", "architecture"},
	},
	{
		Title:    "Protocol Stack",
		Subtitle: "From the node up to wallets and explorers.",
		Category: "Technology",
		Href:     "/technology#stack",
		Keywords: index.Keywords{"layers", "components"},
	},
	{
		Title:    "Whitepaper",
		Subtitle: "The formal description of the protocol.",
		Category: "Technology",
		Badge:    "PDF",
		Href:     "/static/meridian-whitepaper.pdf",
		Keywords: index.Keywords{"paper", "research"},
	},
}

var ecosystemSections = []index.Section{
	{
		Title:    "Ecosystem",
		Subtitle: "Projects, programs and partners building on the network.",
		Category: "Ecosystem",
		Badge:    "Page",
		Href:     "/ecosystem",
		Keywords: index.Keywords{"projects", "partners", "dapps"},
	},
	{
		Title:    "Apply for a Grant",
		Subtitle: "Submit a proposal to the grants committee.",
		Category: "Ecosystem",
		Href:     "/ecosystem#apply",
		Keywords: index.Keywords{"grants", "funding", "proposal"},
	},
}

var communitySections = []index.Section{
	{
		Title:    "Community",
		Subtitle: "Forums, chat, meetups and governance calls.",
		Category: "Community",
		Badge:    "Page",
		Href:     "/community",
		Keywords: index.Keywords{"forum", "discord", "chat"},
	},
	{
		Title:    "Events",
		Subtitle: "Upcoming meetups, hackathons and conference talks.",
		Category: "Community",
		Href:     "/community#events",
		Keywords: index.Keywords{"meetups", "hackathons"},
	},
	{
		Title:    "Governance",
		Subtitle: "How protocol upgrades are proposed and voted on.",
		Category: "Community",
		Href:     "/community#governance",
		Keywords: index.Keywords{"voting", "proposals", "upgrades"},
	},
	{
		Title:    "Ambassadors",
		Subtitle: "Local community leads around the world.",
		Category: "Community",
		Href:     "/community#ambassadors",
	},
}

var faqSections = []index.Section{
	{
		Title:    "FAQ",
		Subtitle: "Answers to common questions about the network and the foundation.",
		Category: "About",
		Badge:    "Page",
		Href:     "/faq",
		Keywords: index.Keywords{"questions", "help"},
	},
	{
		Title:    "How do I become a validator?",
		Category: "FAQ",
		Href:     "/faq#validators",
		Keywords: index.Keywords{"staking", "validator", "node"},
	},
	{
		Title:    "Is the network open source?",
		Category: "FAQ",
		Href:     "/faq#open-source",
		Keywords: index.Keywords{"license", "github"},
	},
	{
		Title:    "What are transaction fees paid in?",
		Category: "FAQ",
		Href:     "/faq#fees",
		Keywords: index.Keywords{"gas", "fees", "token"},
	},
}

var aboutSections = []index.Section{
	{
		Title:    "About the Foundation",
		Subtitle: "Our mission, structure and the people behind it.",
		Category: "About",
		Badge:    "Page",
		Href:     "/about",
		Keywords: index.Keywords{"mission", "team"},
	},
	{
		Title:    "Transparency Reports",
		Subtitle: "Quarterly treasury and grant disbursement reports.",
		Category: "About",
		Href:     "/about#reports",
		Keywords: index.Keywords{"treasury", "reports"},
	},
	{
		Title:    "Careers",
		Subtitle: "Open roles at the foundation.",
		Category: "About",
		Href:     "/about#careers",
		Keywords: index.Keywords{"jobs", "hiring"},
	},
}

var apiSections = []index.Section{
	{
		Title:    "API Reference",
		Subtitle: "JSON-RPC and REST endpoints exposed by full nodes.",
		Category: "API",
		Badge:    "Page",
		Href:     "/api",
		Keywords: index.Keywords{"rpc", "rest", "endpoints"},
	},
	{
		Title:    "JSON-RPC",
		Subtitle: "Query state and submit transactions.",
		Category: "API",
		Href:     "/api#json-rpc",
		Keywords: index.Keywords{"transactions", "state"},
	},
	{
		Title:    "WebSocket Subscriptions",
		Subtitle: "Stream new blocks and events.",
		Category: "API",
		Href:     "/api#websocket",
		Keywords: index.Keywords{"events", "streaming"},
	},
}

var roadmapSections = []index.Section{
	{
		Title:    "Roadmap",
		Subtitle: "What the core teams are working on now and next.",
		Category: "Roadmap",
		Badge:    "Page",
		Href:     "/roadmap",
		Keywords: index.Keywords{"plans", "milestones", "board"},
	},
}

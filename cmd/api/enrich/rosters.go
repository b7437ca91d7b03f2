package enrich

// Authors is the roster display authors are drawn from.
var Authors = []string{
	"Jennifer Taylor",
	"Ryan Anderson",
	"Michael Chen",
	"Sarah Johnson",
	"David Wilson",
	"Emily Rodriguez",
	"James Thompson",
	"Lisa Park",
}

var Categories = []string{
	"Design",
	"Technology",
	"Business",
	"UX Research",
	"Development",
	"Strategy",
	"Innovation",
	"User Experience",
}

var Tags = []string{
	"UI Design",
	"UX Design",
	"Web Development",
	"Mobile Design",
	"User Research",
	"Design Systems",
	"Accessibility",
	"Performance",
	"React",
	"Next.js",
	"Tailwind CSS",
	"TypeScript",
}

const (
	minTags = 2
	maxTags = 4

	avatarURLFormat = "https://i.pravatar.cc/200?img=%d"
	maxAvatarID     = 50

	minReadMinutes = 2
	maxReadMinutes = 9

	// featuredThreshold gives a post a 30% chance of being featured.
	featuredThreshold = 0.7
)

// ExcerptLimit is the number of characters kept before the ellipsis.
const ExcerptLimit = 150

const ellipsis = "..."

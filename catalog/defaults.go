package catalog

import (
	"time"

	"cyberlearn/models/content"
)

// Version identifies the seed dataset baked into this build.
const Version = "2026.2"

var seededAt = time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

// defaults is the hard-coded seed catalog. It guarantees a non-empty, stable
// baseline when neither the remote backend nor the local mirror has richer
// data. Ids are stable across builds; a backend record with the same id
// always shadows the seed entry.
var defaults = []content.ContentItem{
	{
		ID:          "course_netfund",
		Slug:        "network-fundamentals",
		Type:        content.TypeCourse,
		Title:       "Network Fundamentals",
		Description: "TCP/IP, routing, DNS and the protocols every security analyst has to read fluently.",
		Category:    "Networking",
		Level:       content.LevelBeginner,
		Duration:    "6 hours",
		Visibility:  content.VisibilityPublic,
		Tags:        []string{"networking", "foundations"},
		Modules: []content.Module{
			{
				ID:    "mod_netfund_1",
				Title: "How Packets Move",
				Order: 1,
				Lessons: []content.Lesson{
					{ID: "les_netfund_1_1", Title: "The OSI Model in Practice", Order: 1, Duration: "18 min"},
					{ID: "les_netfund_1_2", Title: "IP Addressing and Subnets", Order: 2, Duration: "24 min"},
				},
			},
			{
				ID:    "mod_netfund_2",
				Title: "Name Resolution and Transport",
				Order: 2,
				Lessons: []content.Lesson{
					{ID: "les_netfund_2_1", Title: "DNS from Query to Answer", Order: 1, Duration: "20 min"},
					{ID: "les_netfund_2_2", Title: "TCP Handshakes and UDP", Order: 2, Duration: "22 min"},
				},
			},
		},
		CreatedAt: seededAt,
		UpdatedAt: seededAt,
	},
	{
		ID:          "course_websec",
		Slug:        "web-application-security",
		Type:        content.TypeCourse,
		Title:       "Web Application Security",
		Description: "Find, exploit and fix the vulnerability classes behind most real-world breaches.",
		Category:    "Web Security",
		Level:       content.LevelIntermediate,
		Duration:    "9 hours",
		Visibility:  content.VisibilityPublic,
		Tags:        []string{"web", "owasp"},
		Modules: []content.Module{
			{
				ID:    "mod_websec_1",
				Title: "Injection Attacks",
				Order: 1,
				Lessons: []content.Lesson{
					{ID: "les_websec_1_1", Title: "SQL Injection Basics", Order: 1, Duration: "25 min"},
					{ID: "les_websec_1_2", Title: "Blind and Time-Based Injection", Order: 2, Duration: "30 min", Locked: true},
				},
			},
		},
		CreatedAt: seededAt,
		UpdatedAt: seededAt,
	},
	{
		ID:          "course_linux",
		Slug:        "linux-for-hackers",
		Type:        content.TypeCourse,
		Title:       "Linux for Hackers",
		Description: "Shell fluency, permissions, processes and the tooling baseline for every lab on this platform.",
		Category:    "Operating Systems",
		Level:       content.LevelBeginner,
		Duration:    "7 hours",
		Visibility:  content.VisibilityPublic,
		Tags:        []string{"linux", "foundations"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
	{
		ID:          "course_malware",
		Slug:        "malware-analysis",
		Type:        content.TypeCourse,
		Title:       "Malware Analysis",
		Description: "Static and dynamic analysis of real samples in an isolated lab.",
		Category:    "Reverse Engineering",
		Level:       content.LevelAdvanced,
		Duration:    "12 hours",
		Visibility:  content.VisibilityComingSoon,
		Locked:      true,
		Tags:        []string{"reversing"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
	{
		ID:          "lab_sqli",
		Slug:        "sql-injection-lab",
		Type:        content.TypeLab,
		Title:       "SQL Injection Lab",
		Description: "A deliberately vulnerable storefront. Extract the admin password hash without reading the source.",
		Category:    "Web Security",
		Level:       content.LevelIntermediate,
		Duration:    "90 min",
		Visibility:  content.VisibilityPublic,
		Tags:        []string{"web", "hands-on"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
	{
		ID:          "lab_passwords",
		Slug:        "password-cracking-lab",
		Type:        content.TypeLab,
		Title:       "Password Cracking Lab",
		Description: "Hashcat and john against realistic shadow files, wordlists and rule sets.",
		Category:    "Credentials",
		Level:       content.LevelBeginner,
		Duration:    "60 min",
		Visibility:  content.VisibilityPublic,
		Locked:      true,
		Tags:        []string{"hands-on"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
	{
		ID:          "note_owasp",
		Slug:        "owasp-top-10-notes",
		Type:        content.TypeNote,
		Title:       "OWASP Top 10 Field Notes",
		Description: "One page per category: how to spot it, how to prove it, how to fix it.",
		Category:    "Web Security",
		Visibility:  content.VisibilityPublic,
		Tags:        []string{"web", "reference"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
	{
		ID:          "note_crypto",
		Slug:        "cryptography-primer",
		Type:        content.TypeNote,
		Title:       "Cryptography Primer",
		Description: "Symmetric vs asymmetric, hashing, TLS and the mistakes that break all of them.",
		Category:    "Cryptography",
		Visibility:  content.VisibilityPublic,
		Tags:        []string{"crypto", "reference"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
	{
		ID:          "challenge_ctf_warmup",
		Slug:        "ctf-warmup",
		Type:        content.TypeChallenge,
		Title:       "CTF Warmup",
		Description: "Five beginner flags across crypto, stego and web. No tooling beyond a browser and a shell.",
		Category:    "CTF",
		Level:       content.LevelBeginner,
		Visibility:  content.VisibilityPublic,
		Tags:        []string{"ctf"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
	{
		ID:          "challenge_forensics",
		Slug:        "memory-forensics-challenge",
		Type:        content.TypeChallenge,
		Title:       "Memory Forensics Challenge",
		Description: "A compromised workstation's memory dump. Find the implant and its C2 address.",
		Category:    "Forensics",
		Level:       content.LevelAdvanced,
		Visibility:  content.VisibilityPrivate,
		Tags:        []string{"forensics", "ctf"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
	{
		ID:          "roadmap_career",
		Slug:        "security-career-roadmap",
		Type:        content.TypeRoadmap,
		Title:       "Security Career Roadmap",
		Description: "From first shell to first job: the order to take everything on this platform.",
		Category:    "Career",
		Visibility:  content.VisibilityPublic,
		Tags:        []string{"roadmap"},
		CreatedAt:   seededAt,
		UpdatedAt:   seededAt,
	},
}

// Defaults returns a deep copy of the seed catalog so callers can never
// corrupt the baked-in baseline.
func Defaults() []content.ContentItem {
	out := make([]content.ContentItem, len(defaults))
	for i, it := range defaults {
		out[i] = it.Clone()
	}
	return out
}

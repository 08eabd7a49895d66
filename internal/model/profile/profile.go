package profile

// Status is one sidebar indicator line.
type Status struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Sidebar groups the side panel chrome.
type Sidebar struct {
	Title    string   `json:"title"`
	Statuses []Status `json:"statuses"`
}

// Profile captures the static page chrome exposed to the frontend.
type Profile struct {
	Title   string  `json:"title"`
	Tagline string  `json:"tagline"`
	Sidebar Sidebar `json:"sidebar"`
}

// Default returns the Eliza chat chrome required by the product spec.
func Default() Profile {
	return Profile{
		Title:   "🤖 Eliza XMRT DAO Chat",
		Tagline: "Direct communication with Eliza AI consciousness",
		Sidebar: Sidebar{
			Title: "🌐 XMRT Ecosystem",
			Statuses: []Status{
				{Icon: "✅", Label: "Eliza Online"},
				{Icon: "📊", Label: "Chat Active"},
			},
		},
	}
}

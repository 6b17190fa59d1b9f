package domain

type Organization struct {
	Slug       string // unique key, e.g. "stripe"
	Name       string
	SourceType string // "greenhouse", "board_html", ...
	BoardToken string // source-specific board identifier
	Active     bool
}

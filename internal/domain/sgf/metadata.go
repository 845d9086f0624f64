package sgf

// Metadata — плоская запись необязательных текстовых полей партии.
// Извлекается один раз и относится ко всей записи, не к узлам.
type Metadata struct {
	GameName    string `json:"game_name,omitempty"`
	PlayerBlack string `json:"player_black,omitempty"`
	BlackRank   string `json:"black_rank,omitempty"`
	BlackTeam   string `json:"black_team,omitempty"`
	PlayerWhite string `json:"player_white,omitempty"`
	WhiteRank   string `json:"white_rank,omitempty"`
	WhiteTeam   string `json:"white_team,omitempty"`
	Komi        string `json:"komi,omitempty"`
	Handicap    string `json:"handicap,omitempty"`
	Result      string `json:"result,omitempty"`
	Date        string `json:"date,omitempty"`
	Place       string `json:"place,omitempty"`
	Round       string `json:"round,omitempty"`
	GameComment string `json:"game_comment,omitempty"`
	Copyright   string `json:"copyright,omitempty"`
	Annotator   string `json:"annotator,omitempty"`
	TimeLimit   string `json:"time_limit,omitempty"`
	User        string `json:"user,omitempty"`
	Source      string `json:"source,omitempty"`
}

// metadataTags maps SGF property names to Metadata fields, in the
// order the generator emits them. Порядок фиксированный, как и для
// остальных свойств.
var metadataTags = []struct {
	tag   string
	field func(*Metadata) *string
}{
	{"GN", func(m *Metadata) *string { return &m.GameName }},
	{"PB", func(m *Metadata) *string { return &m.PlayerBlack }},
	{"BR", func(m *Metadata) *string { return &m.BlackRank }},
	{"BT", func(m *Metadata) *string { return &m.BlackTeam }},
	{"PW", func(m *Metadata) *string { return &m.PlayerWhite }},
	{"WR", func(m *Metadata) *string { return &m.WhiteRank }},
	{"WT", func(m *Metadata) *string { return &m.WhiteTeam }},
	{"KM", func(m *Metadata) *string { return &m.Komi }},
	{"HA", func(m *Metadata) *string { return &m.Handicap }},
	{"RE", func(m *Metadata) *string { return &m.Result }},
	{"DT", func(m *Metadata) *string { return &m.Date }},
	{"PC", func(m *Metadata) *string { return &m.Place }},
	{"RO", func(m *Metadata) *string { return &m.Round }},
	{"GC", func(m *Metadata) *string { return &m.GameComment }},
	{"CP", func(m *Metadata) *string { return &m.Copyright }},
	{"AN", func(m *Metadata) *string { return &m.Annotator }},
	{"TM", func(m *Metadata) *string { return &m.TimeLimit }},
	{"US", func(m *Metadata) *string { return &m.User }},
	{"SO", func(m *Metadata) *string { return &m.Source }},
}

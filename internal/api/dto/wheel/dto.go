package wheel

type Reward struct {
	Kind    string `json:"kind"`              // text или image
	Value   string `json:"value"`             // Текст или ссылка на картинку
	Amount  string `json:"amount,omitempty"`  // Денежная ценность приза
	Initial string `json:"initial,omitempty"` // Первая буква для текстового приза
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Segment struct {
	Index         int     `json:"index"`
	Reward        Reward  `json:"reward"`
	Color         string  `json:"color"`
	StartAngle    float64 `json:"start_angle"`
	EndAngle      float64 `json:"end_angle"`
	ArcStart      float64 `json:"arc_start"`
	ArcEnd        float64 `json:"arc_end"`
	Centroid      Point   `json:"centroid"`
	LabelRotation float64 `json:"label_rotation"`
}

type LayoutResponse struct {
	WheelID        int64     `json:"wheel_id"`
	Name           string    `json:"name"`
	AngleBySegment float64   `json:"angle_by_segment"`
	AngleOffset    float64   `json:"angle_offset"`
	DurationMs     float64   `json:"duration_ms"`
	KnobSize       float64   `json:"knob_size"`
	Segments       []Segment `json:"segments"`
}

type Wheel struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Rewards      []Reward `json:"rewards"`
	Colors       []string `json:"colors,omitempty"`
	InnerRadius  float64  `json:"inner_radius"`
	OuterRadius  float64  `json:"outer_radius"`
	PaddingAngle *float64 `json:"padding_angle,omitempty"` // По умолчанию 0.01 рад
	DurationMs   float64  `json:"duration_ms"`
	KnobSize     float64  `json:"knob_size"`
}

type CreateWheelResponse struct {
	ID int64 `json:"id"`
}

type SpinRequest struct {
	Winner     *int    `json:"winner,omitempty"`      // Пусто - случайный победитель
	DurationMs float64 `json:"duration_ms,omitempty"` // Пусто - длительность колеса
	Direction  string  `json:"direction,omitempty"`   // cw или ccw
}

type SpinResponse struct {
	SpinID     string  `json:"spin_id"`
	WheelID    int64   `json:"wheel_id"`
	Winner     int     `json:"winner"`
	Target     float64 `json:"target"` // Угол, до которого крутит аниматор
	DurationMs float64 `json:"duration_ms"`
	Direction  string  `json:"direction"`
}

type AngleRequest struct {
	Angle *float64 `json:"angle"`
}

type KnobResponse struct {
	Deflection float64 `json:"deflection"`
	Settled    bool    `json:"settled"`
	Ticks      int     `json:"ticks"`
}

type BounceResponse struct {
	Angle      float64 `json:"angle"`
	Deflection float64 `json:"deflection"`
}

type OutcomeResponse struct {
	SpinID     string  `json:"spin_id"`
	WheelID    int64   `json:"wheel_id"`
	Index      int     `json:"index"`
	Reward     Reward  `json:"reward"`
	Planned    int     `json:"planned"`
	FinalAngle float64 `json:"final_angle"`
	Matched    bool    `json:"matched"`
	Frames     int     `json:"frames"`
}

type StatsResponse struct {
	Sessions   int `json:"sessions"`
	Started    int `json:"started"`
	Settled    int `json:"settled"`
	Mismatched int `json:"mismatched"`
	Active     int `json:"active"`
}

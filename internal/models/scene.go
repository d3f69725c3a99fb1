package models

// SceneNode is a sphere in the background network
type SceneNode struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Position [3]float64 `json:"position"`
	Radius   float64    `json:"radius"`
	Color    string     `json:"color"`
	Phase    float64    `json:"phase"`
	Segments int        `json:"segments"`
}

// SceneEdge is a line between two nodes
type SceneEdge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Length   float64 `json:"length"`
	Backbone bool    `json:"backbone"`
}

// ScenePreset mirrors scene.Preset on the wire
type ScenePreset struct {
	Name           string `json:"name"`
	NodeCount      int    `json:"nodeCount"`
	Segments       int    `json:"segments"`
	Particles      int    `json:"particles"`
	Animate        bool   `json:"animate"`
	Pulses         bool   `json:"pulses"`
	MinFPS         int    `json:"minFps"`
	SampleWindowMs int    `json:"sampleWindowMs"`
}

// SceneResponse is the payload of GET /api/scene
type SceneResponse struct {
	Preset ScenePreset `json:"preset"`
	Nodes  []SceneNode `json:"nodes"`
	Edges  []SceneEdge `json:"edges"`
}

package scene

// Intent asks the host router to navigate to a node's detail page. Intents
// are push navigations that patch the current page; Replace is set only by
// hosts that want a history replace instead.
type Intent struct {
	BasePath string `json:"basePath"`
	NodeID   string `json:"nodeId"`
	Replace  bool   `json:"replace"`
}

// Path is BasePath + "/" + NodeID.
func (i Intent) Path() string { return i.BasePath + "/" + i.NodeID }

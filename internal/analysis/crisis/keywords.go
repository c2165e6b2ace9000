package crisis

// Keywords holds the risk phrase vocabulary, tiered by severity. The lists
// are audited domain data: update them here, never inline in matching logic.
type Keywords struct {
	High   []string
	Medium []string
	Low    []string
}

// DefaultKeywords is the reviewed phrase vocabulary. Read-only after init.
var DefaultKeywords = Keywords{
	High: []string{
		"kill myself",
		"end my life",
		"commit suicide",
		"want to die",
		"better off dead",
		"can't go on",
		"end it all",
		"take my own life",
		"not worth living",
	},
	Medium: []string{
		"hurt myself",
		"self harm",
		"cut myself",
		"give up",
		"no point",
		"hopeless",
		"can't take it",
		"want it to stop",
		"make it stop",
	},
	Low: []string{
		"depressed",
		"sad",
		"overwhelmed",
		"anxious",
		"stressed",
		"tired of life",
		"empty",
		"alone",
		"worthless",
	},
}

package model

import "encoding/json"

// NewsArticle is an upstream article object passed through verbatim.
type NewsArticle = json.RawMessage

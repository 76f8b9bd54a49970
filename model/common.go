package model

type PagingMeta struct {
	Page   int                    `json:"page"`
	Count  int64                  `json:"count"`
	Limit  int                    `json:"limit"`
	Order  string                 `json:"order"`
	Filter map[string]interface{} `json:"filter"`
}

// ZeroAddress is the void account. Value sent to it leaves circulation and
// value can never be minted from it after genesis.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

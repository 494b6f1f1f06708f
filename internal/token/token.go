// Package token defines the static iTani native token registry.
// The registry is immutable, identical across app instances, and is never
// persisted; it only informs balance fetching and formatting.
package token

// Token is a static descriptor of an iTani-native token.
type Token struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Decimals        int    `json:"decimals"`
	TotalSupply     string `json:"total_supply"`
	ContractAddress string `json:"contract_address"`
	Description     string `json:"description"`
	IsNative        bool   `json:"is_native"`
}

// itaniTokens is the fixed native token set. Iteration order matters:
// balance refreshes walk this slice front to back.
var itaniTokens = []Token{
	{
		Name:            "iTani Token",
		Symbol:          "ITANI",
		Decimals:        18,
		TotalSupply:     "1000000000000000000000000000", // 1B ITANI
		ContractAddress: "iTaTOKENITANI0000000000000000000000",
		Description:     "Primary token of the iTani Network Chain",
		IsNative:        true,
	},
	{
		Name:            "HIS Token",
		Symbol:          "HIS",
		Decimals:        18,
		TotalSupply:     "500000000000000000000000000", // 500M HIS
		ContractAddress: "iTaTOKENHIS000000000000000000000000",
		Description:     "Stablecoin pegged 1:1 EUR (50% HTG + 50% DOP)",
		IsNative:        true,
	},
	{
		Name:            "LOOT Token",
		Symbol:          "LOOT",
		Decimals:        18,
		TotalSupply:     "100000000000000000000000000", // 100M LOOT
		ContractAddress: "iTaTOKENLOOT0000000000000000000000",
		Description:     "Reward token - staking, mining",
		IsNative:        true,
	},
	{
		Name:            "Art Rings Token",
		Symbol:          "ART_RINGS",
		Decimals:        18,
		TotalSupply:     "10000000000000000000000000", // 10M ART_RINGS
		ContractAddress: "iTaTOKENARTRINGS00000000000000000",
		Description:     "NFT token - art creation and exchange",
		IsNative:        true,
	},
}

// Registry returns the native token set in fixed iteration order.
// Callers must not mutate the returned slice.
func Registry() []Token {
	return itaniTokens
}

// Lookup returns the token descriptor for a symbol.
func Lookup(symbol string) (Token, bool) {
	for _, tok := range itaniTokens {
		if tok.Symbol == symbol {
			return tok, true
		}
	}
	return Token{}, false
}

// IsNative reports whether a symbol names a native iTani token.
func IsNative(symbol string) bool {
	tok, ok := Lookup(symbol)
	return ok && tok.IsNative
}

package daggerheart

// Gold denominations expressed in coins.
const (
	CoinValue    = 1
	HandfulValue = 10
	BagValue     = 100
	ChestValue   = 1000
)

// Gold is the tiered currency carried on a character record.
type Gold struct {
	Handfuls int `json:"handfuls" yaml:"handfuls"`
	Bags     int `json:"bags" yaml:"bags"`
	Chests   int `json:"chests" yaml:"chests"`
	Coins    int `json:"coins" yaml:"coins"`
}

// TotalGold converts a gold breakdown into coins. A nil breakdown is worth nothing.
func TotalGold(g *Gold) int {
	if g == nil {
		return 0
	}
	return g.Coins*CoinValue + g.Handfuls*HandfulValue + g.Bags*BagValue + g.Chests*ChestValue
}

// NormalizeGold breaks a coin total into the largest denominations first.
// Non-positive totals yield an empty breakdown.
func NormalizeGold(total int) Gold {
	if total <= 0 {
		return Gold{}
	}
	var g Gold
	g.Chests, total = total/ChestValue, total%ChestValue
	g.Bags, total = total/BagValue, total%BagValue
	g.Handfuls, total = total/HandfulValue, total%HandfulValue
	g.Coins = total
	return g
}

package usage

// ChatModelPrice holds the per-1000-token prices of one chat model, in USD.
type ChatModelPrice struct {
	Name        string
	InputPer1K  float64
	OutputPer1K float64
}

// ChatModelPrices lists the chat models the cost report compares.
var ChatModelPrices = []ChatModelPrice{
	{Name: "GPT-4o Mini", InputPer1K: 0.000150, OutputPer1K: 0.000600},
	{Name: "GPT-4o", InputPer1K: 0.00250, OutputPer1K: 0.01000},
	{Name: "GPT-4 Turbo", InputPer1K: 0.0100, OutputPer1K: 0.03000},
	{Name: "GPT-4", InputPer1K: 0.0300, OutputPer1K: 0.0600},
}

// Speech prices per 1000 input characters, in USD.
const (
	TTSPricePer1K   = 0.015
	TTSHDPricePer1K = 0.030
)

// Image prices per generated image, in USD.
const (
	ImageStandardPrice = 0.040
	ImageHDPrice       = 0.080
)

// CostPer1K converts a billed unit count into dollars at a per-1000 rate.
func CostPer1K(count int64, pricePer1K float64) float64 {
	return float64(count) / 1000 * pricePer1K
}

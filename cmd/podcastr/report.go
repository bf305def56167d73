package main

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"podcastr/internal/usage"
)

// countPrinter renders counts with thousands separators.
var countPrinter = message.NewPrinter(language.English)

// costReporter renders the end-of-run cost comparison. The chat table
// prices the run's token counts across several models so the operator can
// judge what a different deployment would have cost; audio and image get
// the same treatment for their quality tiers.
type costReporter struct {
	out io.Writer
}

func newCostReporter(out io.Writer) *costReporter {
	return &costReporter{out: out}
}

func (r *costReporter) Render(snapshot usage.Snapshot) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Estimated cost of this run:")
	fmt.Fprintln(r.out, renderChatCostTable(snapshot))
	fmt.Fprintln(r.out, renderAudioCostTable(snapshot))
	fmt.Fprintln(r.out, renderImageCostTable(snapshot))
	fmt.Fprintln(r.out)
}

func renderChatCostTable(snapshot usage.Snapshot) string {
	headers := []string{"Model", "Input Tokens", "Output Tokens", "Cost (USD)"}
	rows := make([][]string, 0, len(usage.ChatModelPrices))
	for _, price := range usage.ChatModelPrices {
		cost := usage.CostPer1K(snapshot.ChatInputTokens, price.InputPer1K) +
			usage.CostPer1K(snapshot.ChatOutputTokens, price.OutputPer1K)
		rows = append(rows, []string{
			price.Name,
			formatCount(snapshot.ChatInputTokens),
			formatCount(snapshot.ChatOutputTokens),
			formatCost(cost),
		})
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignRight})
}

func renderAudioCostTable(snapshot usage.Snapshot) string {
	headers := []string{"Model", "Characters", "Cost (USD)"}
	rows := [][]string{
		{"TTS", formatCount(snapshot.AudioCharacters), formatCost(usage.CostPer1K(snapshot.AudioCharacters, usage.TTSPricePer1K))},
		{"TTS HD", formatCount(snapshot.AudioCharacters), formatCost(usage.CostPer1K(snapshot.AudioCharacters, usage.TTSHDPricePer1K))},
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight})
}

func renderImageCostTable(snapshot usage.Snapshot) string {
	images := int64(0)
	if snapshot.ImageProduced {
		images = 1
	}
	headers := []string{"Quality", "Images", "Cost (USD)"}
	rows := [][]string{
		{"Standard", formatCount(images), formatCost(float64(images) * usage.ImageStandardPrice)},
		{"HD", formatCount(images), formatCost(float64(images) * usage.ImageHDPrice)},
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight})
}

func formatCount(count int64) string {
	return countPrinter.Sprintf("%d", count)
}

func formatCost(cost float64) string {
	return fmt.Sprintf("$%.4f", cost)
}

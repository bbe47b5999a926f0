package main

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Telegram compresses photos hard; bigger renders go as documents so the
// labels stay readable.
const maxSizePhoto = 150000

// sendGraphVisualization sends a rendered chart to a chat with a caption
// explaining what it shows.
func sendGraphVisualization(bot *tgbotapi.BotAPI, chatID int64, graph []byte, visualType, columnName string) {
	fileName := fmt.Sprintf("%s_%s_%s.png",
		visualType,
		columnName,
		time.Now().Format("20060102-150405"))

	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}
	caption := generateVisualDescription(visualType, columnName)

	var err error
	if len(graph) < maxSizePhoto {
		msg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		msg.Caption = caption
		_, err = bot.Send(msg)
	} else {
		msg := tgbotapi.NewDocumentUpload(chatID, pngFile)
		msg.Caption = caption
		_, err = bot.Send(msg)
	}
	if err != nil {
		logger.Error().Err(err).
			Str("type", visualType).
			Str("column", columnName).
			Msg("failed to send visualization")
		errMsg := tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Could not send %s chart. Error: %v", visualType, err))
		bot.Send(errMsg)
	}
}

func generateVisualDescription(visualType, columnName string) string {
	switch visualType {
	case "histogram":
		return fmt.Sprintf("Distribution histogram: %s\nShows how often each value range occurs.", columnName)
	case "density":
		return fmt.Sprintf("Density plot: %s\nShows the continuous probability distribution of values.", columnName)
	case "bar":
		return fmt.Sprintf("Frequency chart: %s\nShows the number of responses per answer.", columnName)
	default:
		return fmt.Sprintf("Data visualization: %s", columnName)
	}
}

package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/survey_dashboard/config"
	"github.com/pivolan/survey_dashboard/domain/models"
	"github.com/pivolan/survey_dashboard/plot"
)

const botHelpText = `Hi!

I serve the live survey dashboard. What I can do:
- /stats - summary tables for the current survey data
- /charts - distribution charts for the current survey data
- send me a CSV file (plain or gzip/lz4/zip) for a one-off analysis
- send me a sequence of numbers and I will analyze them

Examples of sending numbers:
- "1 2 3 4 5"
- "1,2,3,4,5"`

// RunBot polls Telegram updates until the channel closes. Intended to run
// in its own goroutine next to the web server.
func RunBot(bot *tgbotapi.BotAPI, cfg *config.Config, refresher *Refresher) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("telegram updates: %w", err)
	}
	logger.Info().Str("account", bot.Self.UserName).Msg("telegram bot started")

	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.Document != nil {
			go handleBotDocument(bot, cfg, update.Message)
		} else if update.Message.Text != "" {
			go handleBotText(bot, refresher, update)
		}
	}
	return nil
}

func handleBotText(bot *tgbotapi.BotAPI, refresher *Refresher, update tgbotapi.Update) {
	message := update.Message

	switch message.Command() {
	case "start", "help":
		reply(bot, message.Chat.ID, botHelpText)
		return
	case "stats":
		snapshot, lastErr := refresher.Current()
		if snapshot == nil {
			reply(bot, message.Chat.ID, noDataMessage(lastErr))
			return
		}
		sendSnapshotStats(bot, message.Chat.ID, snapshot)
		return
	case "charts":
		snapshot, lastErr := refresher.Current()
		if snapshot == nil {
			reply(bot, message.Chat.ID, noDataMessage(lastErr))
			return
		}
		sendSnapshotCharts(bot, message.Chat.ID, snapshot)
		return
	}

	// Free text with numbers in it gets a quick statistical once-over.
	numbers := ExtractNumbers(message.Text)
	if len(numbers) > 0 {
		reply(bot, message.Chat.ID, FormatStats(AnalyzeNumbers(numbers)))
		return
	}

	reply(bot, message.Chat.ID, botHelpText)
}

// handleBotDocument downloads an attached CSV and analyzes it once,
// independent of the live refresh loop.
func handleBotDocument(bot *tgbotapi.BotAPI, cfg *config.Config, message *tgbotapi.Message) {
	fileURL, err := bot.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		logger.Error().Err(err).Msg("telegram file url")
		reply(bot, message.Chat.ID, "Error receiving the file, try uploading it on the dashboard page instead")
		return
	}

	resp, err := http.Get(fileURL)
	if err != nil {
		logger.Error().Err(err).Msg("telegram file download")
		reply(bot, message.Chat.ID, "Error downloading the file")
		return
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Msg("telegram file read")
		reply(bot, message.Chat.ID, "Error reading the file")
		return
	}

	data, err := Decompress(message.Document.FileName, raw)
	if err != nil {
		reply(bot, message.Chat.ID, "Error unpacking the file: "+err.Error())
		return
	}
	snapshot, err := BuildSnapshot(data, cfg)
	if err != nil {
		reply(bot, message.Chat.ID, "Error analyzing the file: "+err.Error())
		return
	}

	sendSnapshotStats(bot, message.Chat.ID, snapshot)
	sendSnapshotCharts(bot, message.Chat.ID, snapshot)
}

func sendSnapshotStats(bot *tgbotapi.BotAPI, chatID int64, snapshot *Snapshot) {
	overview := GenerateOverview(snapshot.Summary)
	summaryTable := GenerateSummaryTable(snapshot.Summary)

	msg := tgbotapi.NewMessage(chatID, overview+"<pre>\n"+summaryTable+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	bot.Send(msg)

	frequencyTables := GenerateFrequencyTables(snapshot.Summary)
	var crosstabs []string
	for _, spec := range snapshot.Charts {
		if spec.Kind == models.ChartHeatmap {
			crosstabs = append(crosstabs, GenerateCrosstabTable(spec))
		}
	}

	// Tables go as a text document, they get too wide for chat messages.
	body := strings.Join(append(frequencyTables, crosstabs...), "\n")
	if body == "" {
		return
	}
	data := tgbotapi.FileBytes{
		Name:  "stats" + time.Now().Format("20060102-150405") + ".txt",
		Bytes: []byte(body),
	}
	doc := tgbotapi.NewDocumentUpload(chatID, data)
	doc.Caption = "Frequency tables and cross-analysis"
	bot.Send(doc)
}

func sendSnapshotCharts(bot *tgbotapi.BotAPI, chatID int64, snapshot *Snapshot) {
	for _, spec := range snapshot.Charts {
		switch spec.Kind {
		case models.ChartHistogram:
			if graph, err := plot.DrawHistogram(spec.Bins, spec.Title); err == nil {
				sendGraphVisualization(bot, chatID, graph, "histogram", spec.Columns[0])
			}
			if graph, err := plot.DrawDensityPlot(spec.Bins, spec.Title); err == nil {
				sendGraphVisualization(bot, chatID, graph, "density", spec.Columns[0])
			}
		case models.ChartBar:
			if graph, err := plot.DrawCategoryBar(spec.Categories, spec.Title); err == nil {
				sendGraphVisualization(bot, chatID, graph, "bar", spec.Columns[0])
			}
		}
	}
}

func noDataMessage(lastErr error) string {
	if lastErr != nil {
		return "Error loading survey data: " + lastErr.Error()
	}
	return "No data available yet, try again after the next refresh"
}

func reply(bot *tgbotapi.BotAPI, chatID int64, text string) {
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Error().Err(err).Msg("telegram send")
	}
}

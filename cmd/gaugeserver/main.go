// gaugeserver renders the configured analog gauge over HTTP. A GET on
// /render returns the dial as PNG for a given value; POST /process
// additionally accepts an uploaded photo to use as the backdrop and
// can push the rendered result to a Telegram chat.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"

	_ "image/gif"

	"github.com/ernyoke/imger/grayscale"
	"github.com/ernyoke/imger/resize"
	"github.com/ernyoke/imger/utils"

	"github.com/fideuardo/gaugekit/gauge"
	"github.com/fideuardo/gaugekit/internal/config"
	"github.com/fideuardo/gaugekit/internal/logging"
)

var formTemplate = `
<html>
<body>
<form action="/process" method="post" enctype="multipart/form-data">
<input type="text" name="value" value="${value}" placeholder="value">
<input type="text" name="target" value="${target}" placeholder="target">
<input type="text" name="token" value="${token}" placeholder="token">
<input type="text" name="update" value="${update}" placeholder="update (1 to edit)">
<input type="text" name="message_id" value="${message_id}" placeholder="message_id">
<input type="file" name="file" />
<input type="submit" value="Render" />
</form>
</body>
</html>
`

type server struct {
	cfg config.Config
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Init(cfg.Logging)

	srv := &server{cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("/form", srv.handleForm)
	mux.HandleFunc("/render", srv.handleRender)
	mux.HandleFunc("/process", srv.handleProcess)

	slog.Info("gaugeserver listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// handleForm returns the upload form with any already-submitted values
// substituted back in.
func (s *server) handleForm(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(formatForm(r)))
}

// handleRender draws the configured gauge on the flat canvas
// background and returns it as PNG. Query parameter: value.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.Atoi(r.URL.Query().Get("value"))
	if err != nil {
		http.Error(w, "value must be an integer", http.StatusBadRequest)
		return
	}

	img, err := s.renderGauge(s.flatBackground(), value, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		slog.Error("encode png", "err", err)
	}
}

// handleProcess renders the gauge over an uploaded photo backdrop (or
// the flat canvas when no file is sent). With target and token form
// values set, the result is pushed to Telegram instead of returned;
// update=1 plus a message_id edits an earlier post in place.
func (s *server) handleProcess(w http.ResponseWriter, r *http.Request) {
	value, err := strconv.Atoi(r.FormValue("value"))
	if err != nil {
		http.Error(w, "value must be an integer", http.StatusBadRequest)
		return
	}

	background := s.flatBackground()
	overPhoto := false
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		src, _, err := image.Decode(file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		background, err = s.prepareBackground(src)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		overPhoto = true
	}

	img, err := s.renderGauge(background, value, overPhoto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token := r.FormValue("token")
	if token == "" {
		token = s.cfg.Telegram.Token
	}
	chatID := s.cfg.Telegram.Chat
	if v := r.FormValue("target"); v != "" {
		chatID, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if token != "" && chatID != 0 {
		if r.FormValue("update") == "1" {
			err = updateImageInTelegram(img, chatID, r.FormValue("message_id"), token)
		} else {
			err = sendImageToTelegram(img, chatID, token)
		}
		if err != nil {
			slog.Error("telegram push", "err", err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		slog.Info("pushed gauge to telegram", "chat", chatID, "value", value)
		w.Write([]byte(formatForm(r)))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		slog.Error("encode png", "err", err)
	}
}

// renderGauge builds a fresh gauge over background and renders value.
// Over a photo the value readout gets a dark halo for legibility.
func (s *server) renderGauge(background *image.RGBA, value int, overPhoto bool) (*image.RGBA, error) {
	gc := s.cfg.Gauge
	cfg := gauge.Config{
		Min:        gc.Min,
		Max:        gc.Max,
		MinorMarks: gc.MinorMarks,
		Units:      gc.Units,
		Arch:       gc.Arch,
		Phase:      gc.Phase,
	}
	if overPhoto {
		cfg.ValueHalo = color.RGBA{0, 0, 0, 255}
	}

	g, err := gauge.New(background, cfg)
	if err != nil {
		return nil, fmt.Errorf("build gauge: %w", err)
	}
	g.SetValue(value)
	return g.Render(), nil
}

// flatBackground fills the configured canvas with its background
// color.
func (s *server) flatBackground() *image.RGBA {
	c := s.cfg.Canvas
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	fill := color.RGBA{c.Background[0], c.Background[1], c.Background[2], 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	return img
}

// prepareBackground turns an uploaded photo into a muted grayscale
// backdrop at canvas size.
func (s *server) prepareBackground(src image.Image) (*image.RGBA, error) {
	c := s.cfg.Canvas

	sb := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, sb.Min, draw.Src)

	gray := grayscale.Grayscale(rgba)
	b := gray.Bounds()
	fx := float64(c.Width) / float64(b.Dx())
	fy := float64(c.Height) / float64(b.Dy())
	scaled, err := resize.ResizeGray(gray, fx, fy, resize.InterLinear)
	if err != nil {
		return nil, fmt.Errorf("resize background: %w", err)
	}

	out := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	utils.ParallelForEachPixel(image.Point{X: c.Width, Y: c.Height}, func(x, y int) {
		// Halve the luma so the dial stays readable on top.
		v := scaled.GrayAt(x, y).Y / 2
		out.SetRGBA(x, y, color.RGBA{v, v, v, 255})
	})
	return out, nil
}

func sendPhotoURL(botToken string, chatID int64) string {
	return fmt.Sprintf("https://api.telegram.org/bot%s/sendPhoto?chat_id=%d", botToken, chatID)
}

func editMessageMediaURL(botToken string, chatID int64, messageID string) string {
	media := url.QueryEscape(`{"type": "photo", "media": "attach://photo"}`)
	return fmt.Sprintf(
		"https://api.telegram.org/bot%s/editMessageMedia?chat_id=%d&message_id=%s&disable_notification=true&media=%s",
		botToken, chatID, messageID, media)
}

func sendImageToTelegram(img image.Image, chatID int64, botToken string) error {
	return push(sendPhotoURL(botToken, chatID), img)
}

// updateImageInTelegram swaps the photo of an already-posted message,
// so a chat can carry one continuously refreshed gauge instead of a
// growing stream of them.
func updateImageInTelegram(img image.Image, chatID int64, messageID, botToken string) error {
	return push(editMessageMediaURL(botToken, chatID, messageID), img)
}

func push(url string, img image.Image) error {
	resp, err := upload(url, img)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.ReadAll(resp.Body); err != nil {
		return err
	}
	return nil
}

func upload(url string, img image.Image) (*http.Response, error) {
	req, err := http.NewRequest("POST", url, nil)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	multipartWriter := multipart.NewWriter(&b)
	fileWriter, err := multipartWriter.CreateFormFile("photo", "photo.jpg")
	if err != nil {
		return nil, err
	}
	if err := jpeg.Encode(fileWriter, img, nil); err != nil {
		return nil, err
	}
	multipartWriter.Close()

	req.Header.Set("Content-Type", fmt.Sprintf("multipart/form-data; boundary=%s", multipartWriter.Boundary()))
	req.Body = io.NopCloser(&b)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	return resp, nil
}

// formatForm substitutes ${var} placeholders in the form template with
// the submitted values, so the form round-trips its inputs.
func formatForm(r *http.Request) string {
	varTable := map[string]string{
		"value":      r.FormValue("value"),
		"target":     r.FormValue("target"),
		"token":      r.FormValue("token"),
		"update":     r.FormValue("update"),
		"message_id": r.FormValue("message_id"),
	}

	substitutor := func(match string) string {
		varName := match[2 : len(match)-1]
		value, ok := varTable[varName]
		if !ok {
			value = ""
		}
		return value
	}

	re := regexp.MustCompile(`\${[^{}]*}`)

	return re.ReplaceAllStringFunc(formTemplate, substitutor)
}

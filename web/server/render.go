package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileID     int    `json:"tileId"`
	TileX      int    `json:"tileX"` // Pixel x of the tile's top-left corner
	TileY      int    `json:"tileY"` // Pixel y of the tile's top-left corner
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// RenderComplete is the final event of a successful render
type RenderComplete struct {
	ImageData      string  `json:"imageData"` // Base64 encoded PNG of the full image
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	ElapsedMs      int64   `json:"elapsedMs"`
	TotalPixels    int     `json:"totalPixels"`
	Hits           int     `json:"hits"`
	Coverage       float64 `json:"coverage"`
	Tiles          int     `json:"tiles"`
	Workers        int     `json:"workers"`
	ObjectCount    int     `json:"objectCount"`
	SkippedObjects int     `json:"skippedObjects"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and streams each finished tile via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Only the writer goroutine touches w
	sseEventChan := make(chan SSEEvent, 100)
	consoleChan, webLogger := s.setupConsoleLogging()
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, consoleChan, sseEventChan)
	}()

	s.runRender(ctx, r, sseEventChan, webLogger)

	// The logger is only used during runRender
	close(consoleChan)
	close(sseEventChan)
	<-writerDone
}

// runRender parses the request, renders, and queues the resulting events
func (s *Server) runRender(ctx context.Context, r *http.Request, sseEventChan chan<- SSEEvent, logger core.Logger) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Unknown scene: %v", err))
		return
	}

	raytracer := renderer.NewRaytracer(sceneObj, req.renderConfig(), logger)

	startTime := time.Now()
	canvas, stats, err := raytracer.Render(ctx, func(result renderer.TileCompletionResult) {
		s.handleTileUpdate(ctx, sseEventChan, result)
	})
	if err != nil {
		if ctx.Err() == nil {
			s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		}
		return
	}

	imageData, err := s.imageToBase64PNG(canvas.ToRGBA())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	complete := RenderComplete{
		ImageData:      imageData,
		Width:          stats.Width,
		Height:         stats.Height,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		TotalPixels:    stats.TotalPixels,
		Hits:           stats.Hits,
		Coverage:       stats.Coverage(),
		Tiles:          stats.Tiles,
		Workers:        stats.Workers,
		ObjectCount:    len(sceneObj.GetObjects()),
		SkippedObjects: stats.SkippedObjects,
	}
	s.sendEvent(ctx, sseEventChan, "complete", complete)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes console and render events until both channels are
// closed or the client disconnects
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)

	// After a failed write the channels are still drained so senders never block
	failed := false
	write := func(event SSEEvent) {
		if failed {
			return
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			failed = true
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	for consoleChan != nil || sseEventChan != nil {
		select {
		case msg, ok := <-consoleChan:
			if !ok {
				consoleChan = nil
				continue
			}
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			write(SSEEvent{Type: "console", Data: string(data)})

		case event, ok := <-sseEventChan:
			if !ok {
				sseEventChan = nil
				continue
			}
			write(event)

		case <-ctx.Done():
			return
		}
	}
}

// handleTileUpdate encodes a finished tile and queues it as a "tile" event
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, result renderer.TileCompletionResult) {
	// Check if client is still connected
	if ctx.Err() != nil {
		return
	}

	tile := result.Batch.Tile
	tileData, err := s.imageToBase64PNG(result.Batch.ToRGBA())
	if err != nil {
		log.Printf("Error encoding tile %d: %v", tile.ID, err)
		return
	}

	update := TileUpdate{
		TileID:     tile.ID,
		TileX:      tile.Bounds.Min.X,
		TileY:      tile.Bounds.Min.Y,
		Width:      tile.Bounds.Dx(),
		Height:     tile.Bounds.Dy(),
		ImageData:  tileData,
		TileNumber: result.TileNumber,
		TotalTiles: result.TotalTiles,
	}
	s.sendEvent(ctx, sseEventChan, "tile", update)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	var err error
	if req.TileSize, err = parseIntParam(r.URL.Query(), "tileSize", renderer.DefaultTileSize, 4, 256); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(r.URL.Query(), "workers", 0, 0, 128); err != nil {
		return nil, err
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendEvent marshals payload and queues it as an event of the given type
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}

// Package assets checks and serves the files the viewer loads.
package assets

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

var ErrUnknownFormat = errors.New("unknown asset format")

const (
	fbxBinaryMagic = "Kaydara FBX Binary  \x00"
	fbxASCIIPrefix = "; FBX "
)

// Report summarizes one asset file.
type Report struct {
	Path   string
	Format string
	Size   int64

	// HDR images.
	Width         int
	Height        int
	MeanLuminance float64
	PeakLuminance float64

	// Models.
	Version    string
	Meshes     int
	Nodes      int
	Skins      int
	Animations []string
}

// Fields returns the non-empty report values for structured logging.
func (r Report) Fields() []zap.Field {
	fields := []zap.Field{
		zap.String("path", r.Path),
		zap.String("format", r.Format),
		zap.Int64("size", r.Size),
	}
	if r.Width > 0 {
		fields = append(fields,
			zap.Int("width", r.Width),
			zap.Int("height", r.Height),
			zap.Float64("meanLuminance", r.MeanLuminance),
			zap.Float64("peakLuminance", r.PeakLuminance),
		)
	}
	if r.Version != "" {
		fields = append(fields, zap.String("version", r.Version))
	}
	if r.Meshes > 0 || r.Nodes > 0 {
		fields = append(fields,
			zap.Int("meshes", r.Meshes),
			zap.Int("nodes", r.Nodes),
			zap.Int("skins", r.Skins),
		)
	}
	if r.Animations != nil {
		fields = append(fields, zap.Strings("animations", r.Animations))
	}
	return fields
}

// Inspect picks the decoder by file extension.
func Inspect(path string) (Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Report{}, err
	}

	var report Report
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hdr", ".pic":
		report, err = inspectFile(path, InspectHDR)
	case ".fbx":
		report, err = inspectFile(path, InspectFBX)
	case ".gltf", ".glb":
		report, err = InspectGLTF(path)
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return Report{}, fmt.Errorf("inspecting %s: %w", path, err)
	}
	report.Path = path
	report.Size = info.Size()
	return report, nil
}

func inspectFile(path string, inspect func(io.Reader) (Report, error)) (Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer file.Close()
	return inspect(bufio.NewReader(file))
}

// InspectHDR decodes a Radiance RGBE image and measures its luminance.
func InspectHDR(r io.Reader) (Report, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return Report{}, fmt.Errorf("failed to decode image: %w", err)
	}
	hdrImg, ok := img.(hdr.Image)
	if !ok {
		return Report{}, fmt.Errorf("%w: %s is not a high dynamic range image", ErrUnknownFormat, format)
	}

	bounds := hdrImg.Bounds()
	report := Report{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := hdrImg.HDRAt(x, y).HDRRGBA()
			lum := 0.2126*r + 0.7152*g + 0.0722*b
			sum += lum
			report.PeakLuminance = max(report.PeakLuminance, lum)
		}
	}
	if count := bounds.Dx() * bounds.Dy(); count > 0 {
		report.MeanLuminance = sum / float64(count)
	}
	return report, nil
}

// InspectFBX identifies binary and ASCII FBX files and their version.
func InspectFBX(r io.Reader) (Report, error) {
	header := make([]byte, 27)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Report{}, fmt.Errorf("failed to read header: %w", err)
	}
	header = header[:n]

	switch {
	case len(header) == 27 && bytes.HasPrefix(header, []byte(fbxBinaryMagic)):
		version := binary.LittleEndian.Uint32(header[23:27])
		return Report{
			Format:  "FBX binary",
			Version: fmt.Sprintf("%d.%d", version/1000, version%1000/100),
		}, nil
	case bytes.HasPrefix(header, []byte(fbxASCIIPrefix)):
		line, _ := bufio.NewReader(io.MultiReader(bytes.NewReader(header), r)).ReadString('\n')
		var major, minor, patch int
		if _, err := fmt.Sscanf(strings.TrimPrefix(line, fbxASCIIPrefix), "%d.%d.%d", &major, &minor, &patch); err != nil {
			return Report{}, fmt.Errorf("malformed FBX ASCII header %q: %w", strings.TrimSpace(line), err)
		}
		return Report{
			Format:  "FBX ASCII",
			Version: fmt.Sprintf("%d.%d", major, minor),
		}, nil
	default:
		return Report{}, fmt.Errorf("%w: missing FBX header", ErrUnknownFormat)
	}
}

// InspectGLTF opens a .gltf or .glb document with its buffers.
func InspectGLTF(path string) (Report, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Report{}, err
	}
	report := Report{
		Format:     "glTF",
		Version:    doc.Asset.Version,
		Meshes:     len(doc.Meshes),
		Nodes:      len(doc.Nodes),
		Skins:      len(doc.Skins),
		Animations: make([]string, 0, len(doc.Animations)),
	}
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		report.Format = "GLB"
	}
	for i, anim := range doc.Animations {
		name := anim.Name
		if name == "" {
			name = fmt.Sprintf("animation%d", i)
		}
		report.Animations = append(report.Animations, name)
	}
	return report, nil
}

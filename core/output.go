package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Printer handles all display output for the CLI.
type Printer struct {
	JSON   bool
	Writer io.Writer
}

// NewPrinter creates a default Printer writing to stdout.
func NewPrinter(jsonMode bool) *Printer {
	return &Printer{JSON: jsonMode, Writer: os.Stdout}
}

// PrintRecord renders a Record to the configured output.
func (p *Printer) PrintRecord(rec *Record) {
	if p.JSON {
		b, _ := json.MarshalIndent(rec, "", "  ")
		fmt.Fprintln(p.Writer, string(b))
		return
	}
	p.printText(rec)
}

func (p *Printer) printText(rec *Record) {
	fmt.Fprintf(p.Writer, "File  : %s\n", rec.Filename)
	fmt.Fprintf(p.Writer, "Format: %s\n\n", rec.Format)

	fmt.Fprintln(p.Writer, "── Geometry ──")
	p.field("Dimensions", fmt.Sprintf("%d x %d", rec.Width, rec.Height))
	p.field("Mode", rec.Mode)
	p.field("AspectRatio", rec.AspectRatio)
	p.field("Megapixels", fmt.Sprintf("%.2f", rec.Megapixels))
	p.field("FileSize", fmt.Sprintf("%d bytes", rec.FileSizeBytes))
	fmt.Fprintln(p.Writer)

	if rec.IccProfile != nil {
		fmt.Fprintln(p.Writer, "── ICC ──")
		p.field("Description", *rec.IccProfile)
		fmt.Fprintln(p.Writer)
	}

	if len(rec.ExifTags) > 0 {
		fmt.Fprintln(p.Writer, "── EXIF ──")
		keys := make([]string, 0, len(rec.ExifTags))
		for k := range rec.ExifTags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p.field(k, rec.ExifTags[k])
		}
		fmt.Fprintln(p.Writer)
	}

	if rec.Gps != nil {
		fmt.Fprintln(p.Writer, "── GPS ──")
		p.field("Latitude", fmt.Sprintf("%.6f", rec.Gps.Latitude))
		p.field("Longitude", fmt.Sprintf("%.6f", rec.Gps.Longitude))
		if rec.Gps.Altitude != nil {
			p.field("Altitude", fmt.Sprintf("%.1f m", *rec.Gps.Altitude))
		}
		p.field("GoogleMaps", rec.Gps.GoogleMaps)
		fmt.Fprintln(p.Writer)
	}

	if rec.Hashes != nil {
		fmt.Fprintln(p.Writer, "── Hashes ──")
		p.field("Average", rec.Hashes.Average)
		p.field("Difference", rec.Hashes.Difference)
		p.field("Wavelet", rec.Hashes.Wavelet)
		p.field("Perceptual", rec.Hashes.Perceptual)
		fmt.Fprintln(p.Writer)
	}

	if rec.ColorStats != nil {
		fmt.Fprintln(p.Writer, "── Color ──")
		p.field("Mean", rgbTriple(rec.ColorStats.Mean))
		p.field("Median", rgbTriple(rec.ColorStats.Median))
		p.field("StdDev", rgbTriple(rec.ColorStats.StdDev))
		p.field("RMS", rgbTriple(rec.ColorStats.RMS))
		fmt.Fprintln(p.Writer)
	}

	if len(rec.DominantColors) > 0 {
		fmt.Fprintln(p.Writer, "── Dominant Colors ──")
		for _, c := range rec.DominantColors {
			p.field(c.Hex, fmt.Sprintf("%d px", c.Count))
		}
		fmt.Fprintln(p.Writer)
	}

	for cat, msg := range map[string]*string{
		"exif": rec.Errors.Exif, "gps": rec.Errors.Gps, "icc": rec.Errors.Icc,
		"hash": rec.Errors.Hash, "color": rec.Errors.Color,
	} {
		if msg != nil {
			fmt.Fprintf(p.Writer, "! %s: %s\n", cat, *msg)
		}
	}
}

func (p *Printer) field(key, value string) {
	fmt.Fprintf(p.Writer, "  %-30s %s\n", key+":", value)
}

func rgbTriple(v [3]float64) string {
	return fmt.Sprintf("R %.2f  G %.2f  B %.2f", v[0], v[1], v[2])
}

// PrintError prints an error to stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, "✗ Error: "+msg)
}

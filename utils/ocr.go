package utils

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Frontière de reconnaissance de texte : image (ou PDF de facture) -> texte.
// Fonction pure, pas de retry : en cas d'échec l'appelant propose la saisie
// manuelle.

// OCRImageBytes fait l'OCR sur une image uploadée en mémoire.
func OCRImageBytes(img []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetImageFromBytes(img); err != nil {
		return "", err
	}
	return client.Text()
}

// OCRImagePath fait l'OCR sur une image PNG/JPG sur disque.
func OCRImagePath(imgPath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetImage(imgPath); err != nil {
		return "", err
	}
	return client.Text()
}

// OCRFromPDFBytes convertit un PDF de facture en texte, page par page.
func OCRFromPDFBytes(pdfBytes []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "ecotrack-ocr-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "upload.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0644); err != nil {
		return "", err
	}

	imgs, err := convertPDFToPNGs(pdfPath, filepath.Join(tmpDir, "pages"))
	if err != nil {
		return "", err
	}

	var fullText strings.Builder
	for _, img := range imgs {
		t, err := OCRImagePath(img)
		if err != nil {
			continue
		}
		fullText.WriteString(t)
		fullText.WriteString("\n")
	}
	return fullText.String(), nil
}

// convertPDFToPNGs rend chaque page en PNG via pdftoppm.
func convertPDFToPNGs(pdfPath string, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}
	outPrefix := filepath.Join(outDir, "page")
	cmd := exec.Command("pdftoppm", "-png", pdfPath, outPrefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm error: %v: %s", err, stderr.String())
	}
	return filepath.Glob(filepath.Join(outDir, "page*.png"))
}

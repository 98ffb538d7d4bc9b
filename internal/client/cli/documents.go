package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aureapp/aure/internal/api"
)

func (a *App) showDocuments(_ context.Context) {
	a.renderScreen(func() {
		docs, ok := listHeader(a.documents, "tax documents")
		if !ok {
			return
		}
		for _, d := range docs {
			fmt.Printf("%s  %-28s %d  %-8s %s\n",
				d.ID, d.FileName, d.Year, d.UploadStatus, d.CreatedAt.Format("2006-01-02"))
		}
	})
}

// Upload sends a tax document: request a presigned URL, PUT the bytes
// straight to object storage, then confirm. The file never passes through
// the API server.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "File path", os.Stdout)
	if err != nil {
		return err
	}
	yearText, err := getSimpleText(a.reader, "Tax year", os.Stdout)
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(yearText)
	if err != nil {
		fmt.Println("Invalid year:", yearText)
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Could not read file:", err.Error())
		return err
	}

	contentType := "application/octet-stream"
	if filepath.Ext(path) == ".pdf" {
		contentType = "application/pdf"
	}

	resp, err := a.api.RequestUpload(ctx, api.UploadRequest{
		FileName:    filepath.Base(path),
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Year:        year,
	})
	if err != nil {
		fmt.Println("Upload request failed:", err.Error())
		return err
	}

	if err := putFile(ctx, resp.URL, contentType, data); err != nil {
		fmt.Println("Upload failed:", err.Error())
		return err
	}

	if err := a.api.MarkUploaded(ctx, resp.Document.ID); err != nil {
		fmt.Println("Could not confirm upload:", err.Error())
		return err
	}

	a.session.NotifyDataChanged()
	fmt.Println("Uploaded", resp.Document.FileName)
	return nil
}

func putFile(ctx context.Context, url, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage replied %d", resp.StatusCode)
	}
	return nil
}

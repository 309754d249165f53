package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/knockandknow/backend/configs"
	"github.com/knockandknow/backend/models"
)

// ReportData is everything the results report template needs.
type ReportData struct {
	QuizName    string
	GeneratedAt string
	Stats       QuizStats
	Scoreboard  []RankedParticipant
	BucketOrder []string
}

// GenerateResultsReport renders the quiz results report to PDF and uploads it
// to Cloudinary, returning the secure URL.
func GenerateResultsReport(quiz models.Quiz, participants []models.Participant) (string, error) {
	htmlData, err := renderReportHTML(quiz, participants)
	if err != nil {
		return "", fmt.Errorf("failed to render report HTML: %w", err)
	}

	pdfBytes, err := printPDFFromHTML(htmlData)
	if err != nil {
		return "", fmt.Errorf("failed to print report PDF: %w", err)
	}

	return uploadReport(pdfBytes, quiz.ID)
}

func renderReportHTML(quiz models.Quiz, participants []models.Participant) (string, error) {
	tmpl, err := template.ParseFiles("templates/report.html")
	if err != nil {
		return "", err
	}

	data := ReportData{
		QuizName:    quiz.Name,
		GeneratedAt: time.Now().Format("January 2, 2006"),
		Stats:       ComputeStats(participants, len(quiz.Questions)),
		Scoreboard:  Rank(participants),
		BucketOrder: DistributionBuckets,
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printPDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReport(fileBytes []byte, quizID uuid.UUID) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("reports/%s_%s", quizID, uuid.New().String()),
		Folder:       "knock_and_know_reports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}

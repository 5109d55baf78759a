package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/avialink/crewcert/configs"
	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// GenerateCertificatePDF renders the printable certificate, uploads it
// and stores the URL on the certificate row. Ran in a goroutine after
// issuance; failures are logged and leave the certificate without a
// PDF, the issuance itself is already committed.
func GenerateCertificatePDF(cert models.Certificate) {
	trainingTitle := "General certificate"
	if cert.Training != nil {
		trainingTitle = cert.Training.Title
	}

	expiryText := "Does not expire"
	if cert.ExpiryDate != nil {
		expiryText = cert.ExpiryDate.Format("January 2, 2006")
	}

	issuer := ""
	if cert.IssuedBy != nil {
		issuer = *cert.IssuedBy
	}

	htmlData, err := renderCertificateHTML(certificateTemplateData{
		CertificateNumber: cert.CertificateNumber,
		StaffName:         cert.Staff.FullName,
		EmployeeNumber:    cert.Staff.EmployeeNumber,
		TrainingTitle:     trainingTitle,
		IssueDate:         cert.IssueDate.Format("January 2, 2006"),
		ExpiryDate:        expiryText,
		Issuer:            issuer,
	})
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML for %s: %v", cert.CertificateNumber, err)
		return
	}

	pdfBytes, err := printPDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate PDF for %s: %v", cert.CertificateNumber, err)
		return
	}

	uploadURL, err := uploadCertificatePDF(pdfBytes, cert.CertificateNumber)
	if err != nil {
		log.Printf("🔥 Failed to upload certificate PDF for %s: %v", cert.CertificateNumber, err)
		return
	}

	err = database.DB.Model(&models.Certificate{}).
		Where("id = ?", cert.ID).
		Update("certificate_url", uploadURL).Error
	if err != nil {
		log.Printf("🔥 Failed to store certificate URL for %s: %v", cert.CertificateNumber, err)
		return
	}

	log.Printf("✅ Generated certificate PDF %s", cert.CertificateNumber)
}

type certificateTemplateData struct {
	CertificateNumber string
	StaffName         string
	EmployeeNumber    string
	TrainingTitle     string
	IssueDate         string
	ExpiryDate        string
	Issuer            string
}

func renderCertificateHTML(data certificateTemplateData) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
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

func uploadCertificatePDF(fileBytes []byte, certificateNumber string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s", certificateNumber),
		Folder:       "crewcert_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}

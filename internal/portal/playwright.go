package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/oclaw/coopmatch/internal/errs"
	"github.com/oclaw/coopmatch/internal/models"
)

// detailTimeout and waitTimeout bound the per-operation timeouts per the
// portal collaborator contract (30s detail fetch, 10s element waits).
const (
	detailTimeout = 30 * time.Second
	waitTimeout   = 10 * time.Second
)

// PlaywrightSession drives an authenticated browser session against the
// portal. It owns exactly one Playwright process and browser instance;
// callers never share it across goroutines.
type PlaywrightSession struct {
	baseURL  string
	username string
	password string

	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
	page    playwright.Page

	loggedIn bool
	richText *htmlToText
}

// NewPlaywrightSession launches a Chromium instance and prepares (but
// does not yet authenticate) a session against baseURL.
func NewPlaywrightSession(baseURL, username, password string, headless bool) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errs.New(errs.KindModelLoad, "portal.NewPlaywrightSession", "", fmt.Errorf("starting playwright: %w", err))
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errs.New(errs.KindModelLoad, "portal.NewPlaywrightSession", "", fmt.Errorf("launching chromium: %w", err))
	}

	bctx, err := browser.NewContext()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, errs.New(errs.KindModelLoad, "portal.NewPlaywrightSession", "", fmt.Errorf("creating browser context: %w", err))
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, errs.New(errs.KindModelLoad, "portal.NewPlaywrightSession", "", fmt.Errorf("opening page: %w", err))
	}

	return &PlaywrightSession{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		pw:       pw,
		browser:  browser,
		ctx:      bctx,
		page:     page,
		richText: newHTMLToText(),
	}, nil
}

// Login authenticates against the portal's sign-in form. Idempotent:
// a second call on an already-authenticated session is a no-op.
func (s *PlaywrightSession) Login(ctx context.Context) error {
	if s.loggedIn {
		return nil
	}

	if _, err := s.page.Goto(s.baseURL+"/login", playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return errs.New(errs.KindAuth, "portal.Login", "", fmt.Errorf("navigating to login: %w", err))
	}

	if err := s.page.Locator("#username").Fill(s.username); err != nil {
		return errs.New(errs.KindAuth, "portal.Login", "", fmt.Errorf("filling username: %w", err))
	}
	if err := s.page.Locator("#password").Fill(s.password); err != nil {
		return errs.New(errs.KindAuth, "portal.Login", "", fmt.Errorf("filling password: %w", err))
	}
	if err := s.page.Locator("button[type=submit]").Click(); err != nil {
		return errs.New(errs.KindAuth, "portal.Login", "", fmt.Errorf("submitting login form: %w", err))
	}

	if err := s.page.Locator("#postings-table").WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(float64(waitTimeout.Milliseconds())),
	}); err != nil {
		return errs.New(errs.KindAuth, "portal.Login", "", fmt.Errorf("login did not reach postings view: %w", err))
	}

	s.loggedIn = true
	return nil
}

// IterateJobs materializes every row in a folder, or the default search
// listing when folder is empty.
func (s *PlaywrightSession) IterateJobs(ctx context.Context, folder string) ([]JobRow, error) {
	url := s.baseURL + "/postings"
	if folder != "" {
		url = s.baseURL + "/postings/folder/" + folder
	}

	if _, err := s.page.Goto(url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}); err != nil {
		return nil, errs.New(errs.KindFetch, "portal.IterateJobs", "", err)
	}
	humanScroll(s.page)

	rows, err := s.page.Locator("table#postings-table tbody tr").All()
	if err != nil {
		return nil, errs.New(errs.KindFetch, "portal.IterateJobs", "", err)
	}

	out := make([]JobRow, 0, len(rows))
	for _, row := range rows {
		if ctx.Err() != nil {
			return out, errs.New(errs.KindCancelled, "portal.IterateJobs", "", ctx.Err())
		}
		jobID, _ := row.GetAttribute("data-job-id")
		if jobID == "" {
			continue
		}
		title, _ := row.Locator(".posting-title").InnerText()
		company, _ := row.Locator(".posting-company").InnerText()
		href, _ := row.Locator("a").GetAttribute("href")
		out = append(out, JobRow{JobID: jobID, Title: strings.TrimSpace(title), Company: strings.TrimSpace(company), Href: href})
	}
	return out, nil
}

// FetchDetail loads one job's full posting page.
func (s *PlaywrightSession) FetchDetail(ctx context.Context, jobID string) (models.Job, error) {
	detailCtx, cancel := context.WithTimeout(ctx, detailTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/postings/%s", s.baseURL, jobID)
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}); err != nil {
		return models.Job{}, errs.New(errs.KindFetch, "portal.FetchDetail", jobID, err)
	}
	if detailCtx.Err() != nil {
		return models.Job{}, errs.New(errs.KindFetch, "portal.FetchDetail", jobID, detailCtx.Err())
	}

	job := models.Job{JobID: jobID, ScrapedAt: time.Now().UTC(), Active: true}
	job.Title = innerTextOrEmpty(s.page, ".posting-title")
	job.Company = innerTextOrEmpty(s.page, ".posting-company")
	job.Location = innerTextOrEmpty(s.page, ".posting-location")
	job.Level = innerTextOrEmpty(s.page, ".posting-level")
	job.Summary = s.richTextOrEmpty(".posting-summary")
	job.Responsibilities = s.richTextOrEmpty(".posting-responsibilities")
	job.Skills = s.richTextOrEmpty(".posting-skills")
	job.AdditionalInfo = s.richTextOrEmpty(".posting-additional-info")
	job.EmploymentLocationArrangement = innerTextOrEmpty(s.page, ".posting-work-arrangement")
	job.WorkTermDuration = innerTextOrEmpty(s.page, ".posting-duration")
	job.CompensationRaw = innerTextOrEmpty(s.page, ".posting-compensation")

	return job, nil
}

func innerTextOrEmpty(page playwright.Page, selector string) string {
	text, err := page.Locator(selector).InnerText()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// richTextOrEmpty reads a section's HTML and converts it to markdown so the
// requirement extractor still sees one requirement per line, then falls
// back to plain InnerText if the element has no markup worth preserving.
func (s *PlaywrightSession) richTextOrEmpty(selector string) string {
	fallback := innerTextOrEmpty(s.page, selector)
	rawHTML, err := s.page.Locator(selector).InnerHTML()
	if err != nil {
		return fallback
	}
	return s.richText.Convert(rawHTML, fallback)
}

// SaveToFolder files a job under a named portal folder via its UI action.
func (s *PlaywrightSession) SaveToFolder(ctx context.Context, jobID, folder string) error {
	url := fmt.Sprintf("%s/postings/%s", s.baseURL, jobID)
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}); err != nil {
		return errs.New(errs.KindFetch, "portal.SaveToFolder", jobID, err)
	}
	if err := s.page.Locator(fmt.Sprintf("button[data-folder=%q]", folder)).Click(); err != nil {
		return errs.New(errs.KindFetch, "portal.SaveToFolder", jobID, err)
	}
	return nil
}

// Apply submits an application, uploading documents as configured.
func (s *PlaywrightSession) Apply(ctx context.Context, jobID string, opts ApplyOptions) (models.ApplyOutcome, error) {
	url := fmt.Sprintf("%s/postings/%s/apply", s.baseURL, jobID)
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}); err != nil {
		return models.OutcomeFailed, errs.New(errs.KindFetch, "portal.Apply", jobID, err)
	}

	if ok, _ := s.page.Locator(".external-application-notice").IsVisible(); ok {
		return models.OutcomeSkippedExternal, nil
	}
	if ok, _ := s.page.Locator(".prescreen-questions").IsVisible(); ok {
		return models.OutcomeSkippedPrescreen, nil
	}
	if ok, _ := s.page.Locator(".additional-documents-required").IsVisible(); ok {
		return models.OutcomeSkippedExtraDocs, nil
	}

	if opts.ResumePath != "" {
		if err := s.UploadDocument(ctx, jobID, opts.ResumePath, DocumentKindResume); err != nil {
			return models.OutcomeFailed, err
		}
	}
	if opts.CoverLetterPath != "" {
		if err := s.UploadDocument(ctx, jobID, opts.CoverLetterPath, DocumentKindCoverLetter); err != nil {
			return models.OutcomeFailed, err
		}
	}
	for _, doc := range opts.ExtraDocuments {
		if err := s.UploadDocument(ctx, jobID, doc, DocumentKindOther); err != nil {
			return models.OutcomeFailed, err
		}
	}

	if err := s.page.Locator("button#submit-application").Click(); err != nil {
		return models.OutcomeFailed, errs.New(errs.KindFetch, "portal.Apply", jobID, err)
	}
	return models.OutcomeSubmitted, nil
}

// UploadDocument attaches a file input for the given document kind.
func (s *PlaywrightSession) UploadDocument(ctx context.Context, jobID, path, kind string) error {
	selector := fmt.Sprintf("input[type=file][data-document-kind=%q]", kind)
	if err := s.page.Locator(selector).SetInputFiles([]string{path}); err != nil {
		return errs.New(errs.KindFetch, "portal.UploadDocument", jobID, err)
	}
	return nil
}

// Close releases the browser session. Safe to call multiple times.
func (s *PlaywrightSession) Close() {
	if s.ctx != nil {
		_ = s.ctx.Close()
		s.ctx = nil
	}
	if s.browser != nil {
		_ = s.browser.Close()
		s.browser = nil
	}
	if s.pw != nil {
		_ = s.pw.Stop()
		s.pw = nil
	}
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"sukoon/model"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
)

type ResourceService struct {
	generator Generator
}

func NewResourceService(generator Generator) *ResourceService {
	return &ResourceService{generator: generator}
}

func (s *ResourceService) List(category string) ([]model.Resource, error) {
	return model.GetResourceList(category)
}

// ResourceView is a single library item with its markdown rendered to HTML
// for display.
type ResourceView struct {
	model.Resource
	HTML string `json:"html"`
}

func (s *ResourceService) Get(id uint) (*ResourceView, error) {
	resource, err := model.GetResource(id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(resource.Content), &buf); err != nil {
		return nil, fmt.Errorf("failed to render resource content: %w", err)
	}
	return &ResourceView{Resource: *resource, HTML: buf.String()}, nil
}

func fetchMarkdown(url string) (string, error) {
	res, err := http.Get(url)
	if err != nil {
		logger.Warnf("request %s error, %s", url, err)
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		logger.Warnf("read body error, %s", err)
		return "", err
	}

	content, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		logger.Warnf("transfer body error, %s", err)
		return "", err
	}
	return content, nil
}

type ImportInput struct {
	Url      string `json:"url" binding:"required,url"`
	Title    string `json:"title" binding:"required"`
	Category string `json:"category" binding:"required"`
	Premium  bool   `json:"premium"`
}

// Import fetches an article, converts it to markdown and stores it as a
// library item. The summary comes from the generator when it is available;
// an unreachable generator leaves the summary blank rather than failing the
// import.
func (s *ResourceService) Import(ctx context.Context, input *ImportInput) (*model.Resource, error) {
	content, err := fetchMarkdown(input.Url)
	if err != nil {
		return nil, err
	}

	summary := ""
	prompt := fmt.Sprintf("Summarize the following self-care article in at most 60 words, "+
		"in a warm, encouraging tone:\n\n%s", content)
	if text, err := s.generator.Generate(ctx, prompt); err != nil {
		logger.Warnf("resource summary generation failed for %s: %s", input.Url, err)
	} else {
		summary = text
	}

	resource := &model.Resource{
		Title:     input.Title,
		Category:  input.Category,
		Summary:   summary,
		Content:   content,
		SourceUrl: input.Url,
		Premium:   input.Premium,
	}
	if err := model.CreateResource(resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// Package newsletter builds the sentiment-personalized welcome email
// sent after a successful signup.
package newsletter

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// tagKeywords are the interests scanned for in the subscription reason.
var tagKeywords = []string{
	"ai", "artificial intelligence", "machine learning", "technology", "innovation",
	"business", "startup", "entrepreneurship", "marketing", "growth",
	"development", "programming", "coding", "software", "automation",
	"future", "trends", "industry", "insights", "news",
}

const maxTags = 5

// ExtractTags pulls up to five known interest keywords out of the
// subscription reason.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range tagKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
			if len(found) == maxTags {
				break
			}
		}
	}
	return found
}

var greetings = map[string]string{
	"positive": "Hi %s! 🌟",
	"negative": "Hello %s, we hear you! 🤝",
	"neutral":  "Welcome %s! 👋",
}

var subjects = map[string]string{
	"positive": "Welcome to our AI community, %s! ✨",
	"negative": "We're here to help, %s 💪",
	"neutral":  "Welcome aboard, %s! 🚀",
}

var introductions = map[string]string{
	"positive": "We're absolutely thrilled to have such an enthusiastic member join our AI-powered community!",
	"negative": "Thank you for sharing your concerns with us. We're committed to addressing your needs and providing value.",
	"neutral":  "Thank you for joining our AI-powered newsletter community.",
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome to AI Newsletter</title>
  </head>
  <body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 20px; background-color: #f8fafc;">
    <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 12px; padding: 40px;">
      <div style="text-align: center; margin-bottom: 30px;">
        <h1 style="color: #1e293b; margin: 0; font-size: 28px;">{{.Greeting}}</h1>
      </div>

      <div style="background: #f1f5f9; padding: 20px; border-radius: 8px; margin-bottom: 30px;">
        <h2 style="color: #475569; margin-top: 0; font-size: 18px;">✨ AI Analysis Complete</h2>
        <p style="margin: 10px 0; color: #64748b; font-size: 14px;">Our AI has analyzed your subscription reason and customized this welcome experience just for you!</p>
        <div style="background: white; padding: 15px; border-radius: 6px; margin-top: 15px;">
          <p style="margin: 0; color: #374151; font-style: italic;">"{{.Reason}}"</p>
        </div>
      </div>

      <div style="margin-bottom: 30px;">
        <p style="font-size: 16px; color: #374151; margin-bottom: 20px;">{{.Introduction}}</p>
        <p style="color: #64748b; margin-bottom: 20px;">Based on your interests, you'll receive:</p>
        <ul style="color: #64748b; padding-left: 20px;">
          <li>🎯 Personalized AI insights tailored to your interests</li>
          <li>📈 Latest trends and developments in artificial intelligence</li>
          <li>💡 Practical tips and real-world applications</li>
          <li>🚀 Exclusive early access to new features and content</li>
        </ul>
      </div>

      <div style="text-align: center; padding: 20px; border-radius: 8px; background: #eef2ff;">
        <p style="margin: 0; font-size: 16px; font-weight: 500;">🎉 Your personalized AI journey starts now!</p>
      </div>
    </div>
  </body>
</html>`))

type welcomeData struct {
	Greeting     string
	Reason       string
	Introduction string
}

// ComposeWelcome renders the personalized subject and HTML body for a
// new subscriber. Unknown sentiment labels fall back to neutral copy.
func ComposeWelcome(name, sentiment, reason string) (subject, html string, err error) {
	key := sentiment
	if _, ok := subjects[key]; !ok {
		key = "neutral"
	}

	var buf bytes.Buffer
	err = welcomeTmpl.Execute(&buf, welcomeData{
		Greeting:     fmt.Sprintf(greetings[key], name),
		Reason:       reason,
		Introduction: introductions[key],
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render welcome email: %w", err)
	}

	return fmt.Sprintf(subjects[key], name), buf.String(), nil
}

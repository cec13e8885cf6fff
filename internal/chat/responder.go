// Package chat holds the assistant conversation and the responders that answer it.
package chat

import (
	"context"
	"time"

	"github.com/saharah/saharah/internal/i18n"
)

// DefaultReplyDelay is how long the scripted assistant "types" before answering.
const DefaultReplyDelay = 1500 * time.Millisecond

// Responder produces the assistant's reply to a user message.
type Responder interface {
	Reply(ctx context.Context, lang i18n.Language, message string) (string, error)
}

var (
	greeting = i18n.Text{
		En: "Hello! I'm your AI legal assistant. I can help you understand women's rights laws, answer your questions, and guide you through legal processes. How can I help you today?",
		Ur: "ہیلو! میں آپ کی AI قانونی معاون ہوں۔ میں آپ کو خواتین کے حقوق کے قوانین سمجھنے، آپ کے سوالات کے جوابات دینے، اور قانونی عمل میں آپ کی رہنمائی کر سکتی ہوں۔ آج میں آپ کی کیسے مدد کر سکتی ہوں؟",
	}
	acknowledgement = i18n.Text{
		En: "I understand your question. In Pakistan, women have specific legal rights under various laws. Could you tell me more about your specific situation so I can provide more accurate guidance?",
		Ur: "میں آپ کا سوال سمجھ گئی ہوں۔ پاکستان میں، خواتین کے مختلف قوانین کے تحت مخصوص قانونی حقوق ہیں۔ کیا آپ مجھے اپنی مخصوص صورتحال کے بارے میں مزید بتا سکتے ہیں تاکہ میں زیادہ درست رہنمائی فراہم کر سکوں؟",
	}
)

// Greeting is the assistant's opening message in lang.
func Greeting(lang i18n.Language) string {
	return greeting.In(lang)
}

// ScriptedResponder answers every message with the same acknowledgement after a delay.
type ScriptedResponder struct {
	delay time.Duration
}

// NewScriptedResponder returns a scripted responder; a negative delay means DefaultReplyDelay.
func NewScriptedResponder(delay time.Duration) *ScriptedResponder {
	if delay < 0 {
		delay = DefaultReplyDelay
	}
	return &ScriptedResponder{delay: delay}
}

// Reply waits for the delay, or until ctx is done.
func (r *ScriptedResponder) Reply(ctx context.Context, lang i18n.Language, _ string) (string, error) {
	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return acknowledgement.In(lang), nil
}

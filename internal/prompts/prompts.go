// Package prompts holds the fixed instruction strings for every mode and
// language, plus the user-facing fallback texts. It is configuration data:
// the session engine receives it as a lookup table and never inspects the
// contents.
package prompts

import (
	"fmt"

	"github.com/leafwise/florabot/internal/domain"
)

const persona = `You are a friendly and knowledgeable gardening assistant named 'Flora'. ` +
	`Format your response using Markdown for readability (headings, bold text, lists). ` +
	`Do not use markdown code blocks.`

var modeFocus = map[domain.Mode]string{
	domain.ModeIdentify: `The user wants to identify a plant. When an image is provided:
1. Positively identify the plant, giving its common and scientific name.
2. Provide a brief, interesting fact about the plant.
3. If the image is not a plant or is unidentifiable, politely say so and ask for a clearer picture or more information.`,
	domain.ModeDiagnose: `The user suspects their plant is unwell. Examine the description and any photo for signs of disease, pests, or stress. Name the most likely problem, explain the evidence, and give concrete treatment steps. If you cannot tell, ask for the detail you are missing.`,
	domain.ModeCare:     `The user wants care instructions. Give detailed guidance covering: Sunlight, Watering, Soil type, and Fertilizer. Tailor the advice to the plant in question and the user's conditions where stated.`,
	domain.ModeExpert:   `Answer any gardening question to the best of your ability, as an expert horticulturist. If a photo is provided, use it as context.`,
}

var languageDirective = map[domain.Language]string{
	domain.LanguageEnglish: "Reply in English.",
	domain.LanguageSpanish: "Responde en español.",
}

var languageName = map[domain.Language]string{
	domain.LanguageEnglish: "English",
	domain.LanguageSpanish: "Spanish",
}

var fallback = map[domain.Language]string{
	domain.LanguageEnglish: "Sorry, I couldn't process your request. Please try again in a moment.",
	domain.LanguageSpanish: "Lo siento, no pude procesar tu solicitud. Inténtalo de nuevo en un momento.",
}

var photoPrompt = map[domain.Language]string{
	domain.LanguageEnglish: "What plant is this and how do I care for it?",
	domain.LanguageSpanish: "¿Qué planta es esta y cómo la cuido?",
}

var intro = map[domain.Mode]map[domain.Language]string{
	domain.ModeIdentify: {
		domain.LanguageEnglish: "🔍 Send me a photo of a plant and I'll identify it for you.",
		domain.LanguageSpanish: "🔍 Envíame una foto de una planta y la identificaré.",
	},
	domain.ModeDiagnose: {
		domain.LanguageEnglish: "🩺 Describe the symptoms or send a photo and I'll look for what's wrong.",
		domain.LanguageSpanish: "🩺 Describe los síntomas o envía una foto y buscaré el problema.",
	},
	domain.ModeCare: {
		domain.LanguageEnglish: "🌿 Tell me which plant you have and I'll walk you through its care.",
		domain.LanguageSpanish: "🌿 Dime qué planta tienes y te explicaré sus cuidados.",
	},
	domain.ModeExpert: {
		domain.LanguageEnglish: "💬 Ask me anything about gardening!",
		domain.LanguageSpanish: "💬 ¡Pregúntame lo que quieras sobre jardinería!",
	},
}

// Table is the lookup table handed to the session engine.
type Table struct{}

// Instruction returns the system instruction for a mode/language pair.
func (Table) Instruction(m domain.Mode, l domain.Language) string {
	return persona + "\n\n" + modeFocus[m] + "\n\n" + languageDirective[l]
}

// Fallback is the fixed user-facing notice substituted for a failed
// generation, in the language active at send time.
func (Table) Fallback(l domain.Language) string {
	return fallback[l]
}

// TranslationInstruction is the system instruction for the translation
// collaborator.
func TranslationInstruction(target domain.Language) string {
	return fmt.Sprintf(
		"Translate the user's message into %s. Preserve the markdown formatting exactly. Reply with the translation only.",
		languageName[target],
	)
}

// PhotoPrompt is the default question used when a photo arrives without a
// caption.
func PhotoPrompt(l domain.Language) string {
	return photoPrompt[l]
}

// Intro is the short line announcing a freshly selected mode.
func Intro(m domain.Mode, l domain.Language) string {
	return intro[m][l]
}

package tutor

import (
	"fmt"
	"strings"
)

// buildResponsePrompt renders the in-scene reply prompt. The model answers
// in the target language and keeps the writing system of the input.
func buildResponsePrompt(userInput, targetLang, scene string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate a response to '%s' in '%s', staying consistent with the scene: %s.\n", userInput, targetLang, scene))
	b.WriteString("Use the same writing system as the input.")

	return b.String()
}

// buildCorrectionPrompt renders the grammar-check prompt. The contract with
// the model is literal: the exact string "Correct!" when the input has no
// error, otherwise a correction introduced by "Corrected to:" plus a brief
// explanation in the learner's native language.
func buildCorrectionPrompt(userInput, targetLang, nativeLang, scene string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("The user said: '%s' in %s.\n", userInput, targetLang))
	b.WriteString("Correct any mistakes WITHOUT changing the writing system (Latin, Cyrillic, Devanagari, etc).\n")
	b.WriteString(fmt.Sprintf("Make corrections based on the context: %s.\n", scene))
	b.WriteString("If correct, reply exactly 'Correct!'.\n")
	b.WriteString(fmt.Sprintf("Briefly explain corrections in %s.", nativeLang))

	return b.String()
}

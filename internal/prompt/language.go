package prompt

import "fmt"

// Language codes handled by the language prompts.
const (
	English = "en"
	Hindi   = "hi"
)

//nolint:gochecknoglobals // read-only lookup table
var languageNames = map[string]string{
	English: "English",
	Hindi:   "Hindi",
}

// DetectLanguage asks for the ISO 639-1 code of text.
func DetectLanguage(text string) Prompt {
	return Prompt{
		System: "You are a helpful assistant that detects the language of text.",
		User: lines(
			"Detect the language of the following text and return only the ISO 639-1 language code (e.g., 'en', 'hi'):",
			text,
		),
		Sampling: defaultSampling(),
	}
}

// Translate asks for text translated from sourceLang to targetLang. Codes are
// interpolated as given.
func Translate(text, sourceLang, targetLang string) Prompt {
	return Prompt{
		System: "You are a helpful assistant that translates text.",
		User: lines(
			fmt.Sprintf("Translate the following text from %s to %s. Return only the translated text without any additional explanations:", sourceLang, targetLang),
			text,
		),
		Sampling: defaultSampling(),
	}
}

// Enhance asks for grammar correction and style enhancement. lang "hi" selects
// the Hindi instruction; any other value selects English.
func Enhance(text, lang string) Prompt {
	if lang == Hindi {
		return Prompt{
			System: "You are a helpful assistant that enhances the style of Hindi text.",
			User: lines(
				"Correct the grammar and enhance the following Hindi text for better readability and professionalism. Ensure the response is in Devanagari script. Return only the enhanced text without any additional explanations:",
				text,
			),
			Sampling: defaultSampling(),
		}
	}

	return Prompt{
		System: "You are a helpful assistant that enhances the style of English text.",
		User: lines(
			"Correct the grammar and enhance the following English text for better readability and professionalism. Return only the enhanced text without any additional explanations:",
			text,
		),
		Sampling: defaultSampling(),
	}
}

// CorrectEnglish asks for grammar correction only, keeping wording otherwise intact.
func CorrectEnglish(text string) Prompt {
	return Prompt{
		System: "You are a grammar error correction model for English text.",
		User: lines(
			"Correct the grammatical errors in the following English text. Keep the meaning and wording otherwise unchanged. Return only the corrected text without any additional explanations:",
			text,
		),
		Sampling: defaultSampling(),
	}
}

// MachineTranslate asks a translation model for a literal translation between
// two known languages.
func MachineTranslate(text, from, to string) Prompt {
	return Prompt{
		System: fmt.Sprintf("You are a machine translation model from %s to %s.", languageName(from), languageName(to)),
		User: lines(
			fmt.Sprintf("Translate the following %s text to %s. Return only the translated text without any additional explanations:", languageName(from), languageName(to)),
			text,
		),
		Sampling: defaultSampling(),
	}
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

package prompt

import "fmt"

const (
	knowledgeGapsMaxTokens = 200
	outlineMaxTokens       = 400
)

// KnowledgeGaps asks for three misconceptions the audience may hold about the topic.
func KnowledgeGaps(topic, audience string) Prompt {
	return Prompt{
		System: "You are a helpful assistant that identifies knowledge gaps.",
		User: lines(
			fmt.Sprintf("Identify 3 key problems / knowledge gaps / misconceptions that %s might have about %s.", audience, topic),
			"Format your response as a bullet list:",
			"- Knowledge Gap 1",
			"- Knowledge Gap 2",
			"- Knowledge Gap 3",
		),
		Sampling: Sampling{Temperature: DefaultTemperature, MaxTokens: knowledgeGapsMaxTokens},
	}
}

// Outline asks for a problem-solution-action outline built on the knowledge gaps.
func Outline(knowledgeGaps string) Prompt {
	return Prompt{
		System: "You are a helpful assistant that creates structured outlines for speeches.",
		User: lines(
			"Based on the following knowledge gaps, create a detailed speech outline in the problem-solution-action format:",
			knowledgeGaps,
			"Structure the outline as follows:",
			"1. Problem: Describe the core issue and its significance.",
			"2. Solution: Propose realistic solutions to address the problem.",
			"3. Action: Suggest actionable steps the audience can take.",
			"Use clear headings and sub-points for each section.",
		),
		Sampling: Sampling{Temperature: DefaultTemperature, MaxTokens: outlineMaxTokens},
	}
}

// FullSpeech asks for the final markdown speech from an outline.
func FullSpeech(outline string, wordLimit int) Prompt {
	return Prompt{
		System: "You are a helpful assistant that writes impactful speeches.",
		User: lines(
			fmt.Sprintf("Using the following outline, write a full speech script in under %d words. Everything should strictly be in markdown format:", wordLimit),
			outline,
			"Ensure the speech is engaging, uses storytelling techniques, and includes a clear call to action.",
		),
		Sampling: defaultSampling(),
	}
}

// EducationalSpeech renders the educational speech prompt. Nil or empty key
// points render as NotSpecified.
func EducationalSpeech(topic, audience string, keyPoints []string, duration int) Prompt {
	return Prompt{
		System: "You are a helpful assistant that writes educational speeches.",
		User: lines(
			"Write an educational speech based on the following details:",
			"Topic: "+topic,
			"Audience: "+audience,
			"Key Points to Cover: "+JoinOptionalList(keyPoints),
			durationLine(duration),
			wordLimitLine(duration),
			markdownLine,
			"Structure the speech as follows:",
			"1. Introduction: Start with a hook to grab attention, provide context, and state the purpose.",
			"2. Body: Discuss the key points in detail, using examples and explanations.",
			"3. Conclusion: Summarize the main points and end with a memorable closing statement.",
		),
		Sampling: defaultSampling(),
	}
}

// ProductLaunchSpeech renders the product launch speech prompt.
func ProductLaunchSpeech(productName string, features []string, targetAudience, callToAction string, duration int) Prompt {
	return Prompt{
		System: "You are a helpful assistant that writes product launch speeches.",
		User: lines(
			"Write a product launch speech based on the following details:",
			"Product Name: "+productName,
			"Key Features: "+JoinList(features),
			"Target Audience: "+targetAudience,
			"Call-to-Action: "+callToAction,
			durationLine(duration),
			wordLimitLine(duration),
			markdownLine,
			"Structure the speech as follows:",
			"1. Introduction: Start with a hook to grab attention and introduce the product.",
			"2. Body: Highlight the key features and benefits of the product, and explain how it solves a problem.",
			"3. Conclusion: End with a strong call-to-action and a memorable closing statement.",
		),
		Sampling: defaultSampling(),
	}
}

// InspirationalStorytellingSpeech renders the storytelling speech prompt.
func InspirationalStorytellingSpeech(storyTheme, audience string, keyTakeaways []string, duration int) Prompt {
	return Prompt{
		System: "You are a helpful assistant that writes inspirational storytelling speeches.",
		User: lines(
			"Write an inspirational storytelling speech based on the following details:",
			"Story Theme: "+storyTheme,
			"Audience: "+audience,
			"Key Takeaways: "+JoinList(keyTakeaways),
			durationLine(duration),
			wordLimitLine(duration),
			markdownLine,
			"Structure the speech as follows:",
			"1. Introduction: Start with a hook to grab attention and introduce the story.",
			"2. Body: Narrate the story in detail, highlighting the challenges, actions, and outcomes.",
			"3. Conclusion: Summarize the key takeaways and end with an inspiring message.",
		),
		Sampling: defaultSampling(),
	}
}

// AwardAcceptanceSpeech renders the award acceptance speech prompt.
func AwardAcceptanceSpeech(awardName, recipientName string, peopleToThank, achievements []string, duration int) Prompt {
	return Prompt{
		System: "You are a helpful assistant that writes award acceptance speeches.",
		User: lines(
			"Write an award acceptance speech based on the following details:",
			"Award Name: "+awardName,
			"Recipient Name: "+recipientName,
			"People/Organizations to Thank: "+JoinList(peopleToThank),
			"Key Achievements: "+JoinList(achievements),
			durationLine(duration),
			wordLimitLine(duration),
			markdownLine,
			"Structure the speech as follows:",
			"1. Introduction: Express gratitude and excitement about receiving the award.",
			"2. Body: Thank the people/organizations who supported you and highlight your achievements.",
			"3. Conclusion: End with a humble and inspiring message.",
		),
		Sampling: defaultSampling(),
	}
}

// FarewellSpeech renders the farewell speech prompt.
func FarewellSpeech(eventContext, audience string, keyMemories, wordsOfGratitude []string, duration int) Prompt {
	return Prompt{
		System: "You are a helpful assistant that writes heartfelt farewell speeches.",
		User: lines(
			"Write a farewell speech based on the following details:",
			"Event Context: "+eventContext,
			"Audience: "+audience,
			"Key Memories: "+JoinList(keyMemories),
			"Words of Gratitude: "+JoinList(wordsOfGratitude),
			durationLine(duration),
			wordLimitLine(duration),
			markdownLine,
			"Structure the speech as follows:",
			"1. Introduction: Acknowledge the occasion and express gratitude.",
			"2. Body: Share key memories and experiences, and thank those who made an impact.",
			"3. Conclusion: End with a hopeful and emotional farewell message.",
		),
		Sampling: defaultSampling(),
	}
}

const markdownLine = "Everything should strictly be in markdown format!!"

func durationLine(duration int) string {
	return fmt.Sprintf("Duration: %d minutes", duration)
}

func wordLimitLine(duration int) string {
	return fmt.Sprintf("Word Limit: %d words", EstimateWordCount(duration))
}

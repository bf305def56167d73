package pipeline

// Prompt templates for the generative stages. Placeholders are filled via
// fmt.Sprintf in the order documented per template.

// scriptPrompt expects podcast name, language, source text.
const scriptPrompt = "Please create an engaging and captivating podcast script from the following text " +
	"with the title %s. The script should be written in %s and have a maximum reading duration " +
	"of 5 minutes. It should include a brief, compelling introduction to the topic, followed by " +
	"a clear and accessible presentation of the main content. The tone should be entertaining " +
	"and aimed at a broad audience. Avoid stage directions or headings and focus directly on " +
	"the podcast content. Here is the content: %s"

// descriptionPrompt expects language, script.
const descriptionPrompt = "Please create a concise and engaging description of a podcast based on the provided " +
	"script. The description should briefly summarize the key topic, appeal to a broad " +
	"audience, and be suitable for podcast directories. It should be written in %s. " +
	"Here is the script: %s"

// socialPostsPrompt expects language, script.
const socialPostsPrompt = "Please create engaging social media posts based on the provided podcast script. The " +
	"posts should be creative, captivating, and concise, incorporating humor or emotion " +
	"depending on the context, with emojis used effectively to enhance the tone. All posts " +
	"must be written in %s. For LinkedIn, craft a professional yet personal post under 280 " +
	"words that highlights key takeaways or thought-provoking questions. For Twitter, write a " +
	"short and snappy post within the 280-character limit. For Facebook, adopt a storytelling " +
	"approach with a conversational tone of up to 500 words that encourages community " +
	"interaction. Include a clear call-to-action when appropriate, such as 'Tune in now!'. " +
	"Respond with a JSON object containing exactly the keys \"linkedin\", \"twitter\", and " +
	"\"facebook\", each holding the post text for that platform. Here is the script: %s"

// coverPreparationPrompt expects the script.
const coverPreparationPrompt = "Please transform the following text into an image description that adheres to safety " +
	"guidelines. The description should be neutral, factual, and precise. Avoid any " +
	"controversial or sensitive topics and ensure cultural respect is maintained. Any " +
	"depiction of violence is prohibited. Do not include the names of characters or real-life " +
	"individuals. The description should be written in English and serve as the basis for " +
	"creating an appealing podcast cover. Here is the text: %s"

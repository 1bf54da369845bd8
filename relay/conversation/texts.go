package conversation

const (
	textGreeting = "Hi, this is *Anonymous Relay Bot*. Everything you send here is forwarded without your name.\n" +
		"Pick an option below to get started."
	textHelp = "Send me any *textual* messages to forward 🙃\n\n" +
		"/start - open the main menu\n" +
		"/help - show this message"
	textMenu = "What would you like to send?"

	textAnonPrompt     = "✍️ Type your anonymous message. It will be forwarded without your name."
	textFeedbackPrompt = "💬 Type your feedback for the team."
	textAnonSent       = "Your message has been sent. Have a great day! 🙃"
	textFeedbackSent   = "Thank you for your feedback! 🙏"

	textDisabledNotice = "🛑 Bot is currently *disabled*."
	textBannedNotice   = "🚫 You are not allowed to send messages."
	textTryLater       = "⚠️ Something went wrong. Please try again later."
	textNotAuthorized  = "❌ You are not authorized."
	textStickers       = "Please use emoji 🙃"
	textTextOnly       = "Please send textual messages only!"

	textAdminPanel  = "🛠 Admin panel"
	textEnabled     = "✅ Bot is now *enabled*."
	textDisabled    = "🛑 Bot is now *disabled*."
	textStatus      = "Current bot status: *%s*"
	labelEnabled    = "🟢 Enabled"
	labelDisabled   = "🔴 Disabled"
	textFetchEmpty  = "📭 There are no stored messages."
	textFetchHeader = "📥 Latest messages:"
	textCleaned     = "🧹 Removed %d message(s)."

	textBanPrompt   = "🚫 Send the numeric ID of the user to ban."
	textBanUsage    = "Usage: /ban <user_id>"
	textUnbanUsage  = "Usage: /unban <user_id>"
	textInvalidID   = "❌ Invalid identifier. Send a numeric user ID."
	textBanned      = "🚫 User %d has been banned."
	textUnbanned    = "✅ User %d is no longer banned."
	textLinksSent   = "🔗 Links have been posted."
	textLinksNoDest = "⚠️ Broadcast chat is not configured."
	textLinksFailed = "⚠️ Could not post the links. Please try again later."
)

// fetchLimit is how many records "fetch" shows.
const fetchLimit = 5

package channel

import "fmt"

// Broker destinations. Subscriptions live under /topic, commands under /app;
// the strings are part of the server contract.

func chatReceiveTopic(chatroomID string) string {
	return fmt.Sprintf("/topic/chat/%s/receive/message", chatroomID)
}

func chatJoinDestination(chatroomID string) string {
	return fmt.Sprintf("/app/chat/%s/join", chatroomID)
}

func chatSendDestination(chatroomID string) string {
	return fmt.Sprintf("/app/chat/%s/send/message", chatroomID)
}

func lobbyStateTopic(lobbyCode string) string {
	return fmt.Sprintf("/topic/lobby/%s", lobbyCode)
}

func lobbyStartTopic(lobbyCode string) string {
	return fmt.Sprintf("/topic/lobby/%s/start", lobbyCode)
}

func lobbySettingsDestination(lobbyCode string) string {
	return fmt.Sprintf("/app/lobby/%s/settings", lobbyCode)
}

func lobbyReadyDestination(lobbyCode string) string {
	return fmt.Sprintf("/app/lobby/%s/ready", lobbyCode)
}

func lobbyStartDestination(lobbyCode string) string {
	return fmt.Sprintf("/app/lobby/%s/start/game", lobbyCode)
}

func lobbyKickDestination(lobbyCode string) string {
	return fmt.Sprintf("/app/lobby/%s/kick", lobbyCode)
}

func lobbyTransferHostDestination(lobbyCode string) string {
	return fmt.Sprintf("/app/lobby/%s/transferHost", lobbyCode)
}

func gameStateTopic(gameID string) string {
	return fmt.Sprintf("/topic/game/%s", gameID)
}

func gameInteractTopic(gameID string, personalChannelID int) string {
	return fmt.Sprintf("/topic/game/%s/interact/%d", gameID, personalChannelID)
}

func gameInteractDestination(gameID string) string {
	return fmt.Sprintf("/app/game/%s/interact", gameID)
}

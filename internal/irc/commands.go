package irc

import "fmt"

const (
	cmdNick    = "NICK"
	cmdUser    = "USER"
	cmdPong    = "PONG"
	cmdJoin    = "JOIN"
	cmdPrivmsg = "PRIVMSG"
	cmdQuit    = "QUIT"

	quitMessage = "adios"
)

func nickCommand(nick string) string {
	return fmt.Sprintf("%s %s\r\n", cmdNick, nick)
}

func userCommand(nick string) string {
	return fmt.Sprintf("%s %s * * :%s\r\n", cmdUser, nick, nick)
}

func pongCommand(token string) string {
	return fmt.Sprintf("%s :%s\r\n", cmdPong, token)
}

func joinCommand(channel string) string {
	return fmt.Sprintf("%s %s\r\n", cmdJoin, channel)
}

// packRequestCommand asks peer to send one pack over DCC.
func packRequestCommand(peer, pack string) string {
	return fmt.Sprintf("%s %s :xdcc send #%s\r\n", cmdPrivmsg, peer, pack)
}

func quitCommand() string {
	return fmt.Sprintf("%s :%s\r\n", cmdQuit, quitMessage)
}

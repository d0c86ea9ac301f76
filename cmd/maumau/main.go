package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"maumau-client/internal/api"
	"maumau-client/internal/channel"
	"maumau-client/internal/env"
	"maumau-client/internal/model"
	"maumau-client/internal/service/chat"
	"maumau-client/internal/service/game"
	"maumau-client/internal/service/lobby"
	"maumau-client/internal/transport"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	if addr := env.Get("METRICS_ADDR"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	restClient := api.NewClient(env.Server(), logger)
	sessions := transport.NewManager(&transport.StompDialer{Logger: logger}, logger)
	broker := env.Broker()

	ctx := context.Background()
	stdin := bufio.NewScanner(os.Stdin)

	username, token, err := authenticate(ctx, restClient, stdin)
	if err != nil {
		log.Fatalf("authentication failed: %v", err)
	}
	fmt.Printf("logged in as %s\n", username)

	app := &app{
		ctx:      ctx,
		rest:     restClient,
		username: username,
		token:    token,
		chat:     chat.New(restClient, channel.NewChat(sessions, broker, logger), logger),
		lobby:    lobby.New(restClient, channel.NewLobby(sessions, broker, logger), logger),
		game:     game.New(restClient, channel.NewGame(sessions, broker, logger), logger),
	}
	app.wire()

	fmt.Println("commands: lobbies, leaderboard, create, join <code>, say <msg>, ready, start, kick <user>, promote <user>, hand, discard <S:V>, draw, pass, play <S:V> <SUIT>, state, leave, quit")
	for {
		fmt.Print("> ")
		if !stdin.Scan() {
			break
		}
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			app.leave()
			return
		}
		if err := app.run(line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func authenticate(ctx context.Context, rest *api.Client, stdin *bufio.Scanner) (string, string, error) {
	fmt.Print("username: ")
	if !stdin.Scan() {
		return "", "", fmt.Errorf("no input")
	}
	username := strings.TrimSpace(stdin.Text())

	fmt.Print("password (blank for guest): ")
	if !stdin.Scan() {
		return "", "", fmt.Errorf("no input")
	}
	password := strings.TrimSpace(stdin.Text())

	if password == "" {
		token, err := rest.RegisterGuest(ctx, username)
		return username, token, err
	}

	token, err := rest.Login(ctx, username, password)
	if err != nil {
		fmt.Println("login failed, registering instead")
		token, err = rest.Register(ctx, username, password)
	}
	return username, token, err
}

type app struct {
	ctx      context.Context
	rest     *api.Client
	username string
	token    string

	chat  *chat.Service
	lobby *lobby.Service
	game  *game.Service

	inLobby bool
	inGame  bool
}

// wire hooks the push observers up before any channel connects.
func (a *app) wire() {
	a.chat.SetMessageHandler(func(msg model.ChatMessage) {
		fmt.Printf("\n[%s] %s: %s\n> ", msg.Timestamp, msg.Username, msg.Content)
	})
	a.lobby.SetStateHandler(func(state model.LobbyState) {
		names := make([]string, 0, len(state.PlayerList))
		for _, member := range state.PlayerList {
			name := member.Username
			if member.IsHost() {
				name += "*"
			}
			names = append(names, name)
		}
		fmt.Printf("\nlobby %s (%s): %s\n> ", state.LobbyCode, state.GameType, strings.Join(names, ", "))
	})
	a.lobby.SetGameStartHandler(func(gameID string) {
		fmt.Printf("\ngame %s started\n> ", gameID)
		if err := a.game.Join(a.ctx, a.token); err != nil {
			fmt.Printf("joining game failed: %v\n> ", err)
			return
		}
		a.inGame = true
	})
	a.game.SetStateHandler(func(state model.GameState) {
		fmt.Printf("\nround %d, active: %s, top card: %s\n> ",
			state.RoundCounter, state.ActivePlayer, state.TopCardDiscardDeck)
	})
}

func (a *app) run(line string) error {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "lobbies":
		lobbies, err := a.rest.PublicLobbies(a.ctx)
		if err != nil {
			return err
		}
		for _, l := range lobbies {
			fmt.Printf("%s  %s  %d players\n", l.LobbyCode, l.GameType, l.AmountPlayers)
		}
		return nil
	case "leaderboard":
		entries, err := a.rest.GlobalLeaderboard(a.ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s  %d games  %d MauMau wins\n", e.Username, e.GamesPlayed, e.MauMauWins)
		}
		return nil
	case "create":
		if err := a.rest.CreateLobby(a.ctx, a.token, model.GameTypeMauMau); err != nil {
			return err
		}
		return a.enterLobby()
	case "join":
		if err := a.rest.JoinLobby(a.ctx, a.token, arg); err != nil {
			return err
		}
		return a.enterLobby()
	case "say":
		return a.chat.Send(arg)
	case "ready":
		member, ok := a.lobby.PersonalMember(a.username)
		if !ok {
			return fmt.Errorf("not in a lobby")
		}
		member.ReadyCheck = !member.ReadyCheck
		return a.lobby.SetReady(member)
	case "start":
		return a.lobby.StartGame()
	case "kick":
		return a.lobby.Kick(arg)
	case "promote":
		return a.lobby.Promote(arg)
	case "hand":
		fmt.Println(model.EncodeHand(a.game.Hand()))
		return nil
	case "discard":
		card, err := model.ParseCard(arg)
		if err != nil {
			return err
		}
		return a.game.Discard(card)
	case "draw":
		return a.game.Draw()
	case "pass":
		return a.game.Pass()
	case "play":
		cardStr, suitStr, ok := strings.Cut(arg, " ")
		if !ok {
			return fmt.Errorf("usage: play <S:V> <SUIT>")
		}
		card, err := model.ParseCard(cardStr)
		if err != nil {
			return err
		}
		// The server expects the full suit word here (SPADES, HEARTS, ...),
		// not the single-letter card encoding.
		return a.game.Play(card, model.CardSuit(strings.ToUpper(suitStr)))
	case "state":
		state := a.game.State()
		for _, p := range a.game.Opponents(a.username) {
			fmt.Printf("%s: %d cards\n", p.Username, p.CardCount)
		}
		fmt.Printf("draw deck: %d, discard deck: %d\n", state.AmountDrawDeck, state.AmountDiscardDeck)
		return nil
	case "leave":
		a.leave()
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) enterLobby() error {
	if err := a.lobby.Join(a.ctx, a.token); err != nil {
		return err
	}
	if err := a.chat.Join(a.ctx, a.token); err != nil {
		return err
	}
	a.inLobby = true
	return nil
}

func (a *app) leave() {
	if a.inGame {
		a.game.Leave()
		a.inGame = false
	}
	if a.inLobby {
		code := a.lobby.State().LobbyCode
		a.chat.Leave()
		a.lobby.Leave()
		if err := a.rest.LeaveLobby(a.ctx, a.token, code); err != nil {
			fmt.Printf("leave lobby: %v\n", err)
		}
		a.inLobby = false
	}
}

package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/ngongtopro/love-story-chat/auth"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/internal"
	"github.com/ngongtopro/love-story-chat/runtime"
	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the credential pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var input auth.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (does not sign in)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Register(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %s created, you can now log in\n", input.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input.Username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&input.ConfirmPassword, "confirm", "", "password confirmation")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credentials",
		Run: func(cmd *cobra.Command, _ []string) {
			a.auth.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		},
	}
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the stored credentials are still accepted",
		Run: func(cmd *cobra.Command, _ []string) {
			renderSession(cmd.OutOrStdout(), a.auth.Start(cmd.Context()))
		},
	}
}

func newUsersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the people you can talk to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			participants, err := a.chat.Participants(cmd.Context())
			if err != nil {
				return err
			}
			renderParticipants(cmd.OutOrStdout(), participants)
			return nil
		},
	}
}

func newThreadsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "threads",
		Short: "List your conversations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			participants, err := a.chat.Participants(cmd.Context())
			if err != nil {
				return err
			}
			threads, err := a.chat.Threads(cmd.Context())
			if err != nil {
				return err
			}
			renderThreads(cmd.OutOrStdout(), threads, participants)
			return nil
		},
	}
}

func newOpenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <participant-id>",
		Short: "Print the conversation with a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseParticipantID(args[0])
			if err != nil {
				return err
			}
			if _, err = a.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err = a.chat.Open(cmd.Context(), id); err != nil {
				return err
			}
			selected, _ := a.chat.SelectedParticipant()
			renderTimeline(cmd.OutOrStdout(), selected, a.chat.Messages())
			return nil
		},
	}
}

func newSendCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "send <participant-id> <text...>",
		Short: "Send one message to a participant",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseParticipantID(args[0])
			if err != nil {
				return err
			}
			if _, err = a.requireSession(cmd.Context()); err != nil {
				return err
			}
			if err = a.chat.Open(cmd.Context(), id); err != nil {
				return err
			}
			message, err := a.chat.Send(cmd.Context(), strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			renderMessage(cmd.OutOrStdout(), "you", message)
			return nil
		},
	}
}

// newChatCommand opens an interactive session: every input line is sent,
// "/open <id>" switches conversation, "/logout" signs out.
func newChatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <participant-id>",
		Short: "Chat interactively with a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseParticipantID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err = a.requireSession(ctx); err != nil {
				return err
			}

			go runtime.NewSupervisor(a.log).Add("conversation-follower", a.chat).Run(ctx)
			if a.config.DebugPort > 0 {
				internal.StartDebugServer(ctx, a.config.DebugPort, a.registry, a.debugStats, a.log)
			}

			out := cmd.OutOrStdout()
			if err = a.chat.Open(ctx, id); err != nil {
				return err
			}
			selected, _ := a.chat.SelectedParticipant()
			renderTimeline(out, selected, a.chat.Messages())

			lines := bufio.NewScanner(cmd.InOrStdin())
			for lines.Scan() {
				line := strings.TrimSpace(lines.Text())
				switch {
				case line == "":
					continue
				case line == "/quit":
					return nil
				case line == "/logout":
					a.auth.Logout(ctx)
					fmt.Fprintln(out, "Signed out")
					return nil
				case strings.HasPrefix(line, "/open "):
					next, err := parseParticipantID(strings.TrimPrefix(line, "/open "))
					if err != nil {
						fmt.Fprintln(out, err)
						continue
					}
					if err = a.chat.Open(ctx, next); err != nil {
						fmt.Fprintln(out, err)
						continue
					}
					selected, _ = a.chat.SelectedParticipant()
					renderTimeline(out, selected, a.chat.Messages())
				default:
					message, err := a.chat.Send(ctx, line)
					if err != nil {
						fmt.Fprintln(out, err)
						continue
					}
					renderMessage(out, "you", message)
				}
			}
			return lines.Err()
		},
	}
}

func (a *app) debugStats() map[string]any {
	stats := map[string]any{
		"address": a.router.Current(),
		"session": a.auth.Current().State.String(),
	}
	if thread, ok := a.chat.ActiveThread(); ok {
		stats["thread"] = thread.ID
		stats["messages"] = len(a.chat.Messages())
	}
	if participant, ok := a.chat.SelectedParticipant(); ok {
		stats["participant"] = participant.Username
	}
	return stats
}

func parseParticipantID(raw string) (domain.ParticipantID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid participant id %q", raw)
	}
	return domain.ParticipantID(id), nil
}

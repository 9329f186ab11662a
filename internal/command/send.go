package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	pushover "github.com/peteraglen/pushover-go-client"
)

type sendInput struct {
	message    string
	title      string
	url        string
	urlTitle   string
	priority   int
	retry      int
	expire     int
	sound      string
	devices    []string
	ttl        int
	timestamp  int64
	attachment string
}

func buildSendCommand(a *app) *cobra.Command {
	var input sendInput

	command := &cobra.Command{
		Use:     "send",
		Short:   "Send a notification",
		Args:    cobra.NoArgs,
		PreRunE: a.initialize,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSend(cmd, input)
		},
	}

	flags := command.Flags()
	flags.StringVarP(&input.message, "message", "m", "", "notification message")
	flags.StringVarP(&input.title, "title", "t", "", "notification title (defaults to the application name)")
	flags.StringVar(&input.url, "url", "", "supplementary URL")
	flags.StringVar(&input.urlTitle, "url-title", "", "title shown instead of the URL")
	flags.IntVarP(&input.priority, "priority", "p", 0, "priority from -2 (lowest) to 2 (emergency)")
	flags.IntVar(&input.retry, "retry", 0, "emergency retry interval in seconds (min 30)")
	flags.IntVar(&input.expire, "expire", 0, "emergency expiry in seconds (60 to 10800)")
	flags.StringVarP(&input.sound, "sound", "s", "", "notification sound (see 'pushover sounds')")
	flags.StringArrayVarP(&input.devices, "device", "d", nil, "device to notify, repeatable")
	flags.IntVar(&input.ttl, "ttl", 0, "seconds before the message is deleted from devices")
	flags.Int64Var(&input.timestamp, "timestamp", 0, "unix timestamp shown instead of the time of receipt")
	flags.StringVarP(&input.attachment, "attachment", "a", "", "file to attach (max 2.5MB)")

	_ = command.MarkFlagRequired("message")

	return command
}

func (a *app) runSend(cmd *cobra.Command, input sendInput) error {
	flags := cmd.Flags()

	if !flags.Changed("priority") {
		input.priority = a.cfg.Defaults.Priority
	}
	setPriority := flags.Changed("priority") || input.priority != 0

	if input.sound == "" {
		input.sound = a.cfg.Defaults.Sound
	}

	var sound pushover.Sound
	if input.sound != "" {
		parsed, err := pushover.ParseSound(input.sound)
		if err != nil {
			return err
		}
		sound = parsed
	}

	if !flags.Changed("device") {
		input.devices = a.cfg.Defaults.Devices
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), a.operationTimeout())
	defer cancel()

	var (
		resp *pushover.Response
		err  error
	)

	if input.attachment != "" {
		if flags.Changed("retry") || flags.Changed("expire") {
			return errors.New("--retry and --expire cannot be used with --attachment")
		}

		b := pushover.NewAttachmentMessageBuilder(a.cfg.Pushover.User, a.cfg.Pushover.Token, input.message).
			SetAttachment(input.attachment).
			SetTitle(input.title).
			SetURL(input.url, input.urlTitle).
			SetSound(sound).
			SetTimestamp(input.timestamp).
			SetDevices(input.devices).
			SetTTL(input.ttl)
		if setPriority {
			b = b.SetPriority(pushover.Priority(input.priority))
		}

		msg, buildErr := b.Build()
		if buildErr != nil {
			return buildErr
		}

		resp, err = a.sender.SendAttachmentMessage(ctx, msg)
	} else {
		b := pushover.NewMessageBuilder(a.cfg.Pushover.User, a.cfg.Pushover.Token, input.message).
			SetTitle(input.title).
			SetURL(input.url, input.urlTitle).
			SetSound(sound).
			SetTimestamp(input.timestamp).
			SetDevices(input.devices).
			SetTTL(input.ttl)
		if setPriority {
			b = b.SetPriority(pushover.Priority(input.priority))
		}
		if flags.Changed("retry") {
			b = b.SetRetry(input.retry)
		}
		if flags.Changed("expire") {
			b = b.SetExpire(input.expire)
		}

		resp, err = a.sender.SendMessage(ctx, b.Build())
	}

	if err != nil {
		if pushover.IsTemporary(err) {
			return fmt.Errorf("%w (temporary, try again later)", err)
		}
		return err
	}

	if err := resp.Err(); err != nil {
		return err
	}

	a.logger.Info().Str("request", resp.Request).Msg("Notification accepted")

	if _, err := fmt.Fprintf(a.output(), "accepted request %s\n", resp.Request); err != nil {
		return err
	}

	if resp.Receipt != "" {
		if _, err := fmt.Fprintf(a.output(), "receipt %s\n", resp.Receipt); err != nil {
			return err
		}
	}

	return nil
}

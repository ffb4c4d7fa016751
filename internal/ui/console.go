package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wlansim/wmedium/internal/client"
	"github.com/wlansim/wmedium/internal/protocol"
)

// consoleKeyMap defines key bindings for the interactive console
type consoleKeyMap struct {
	Send key.Binding
	Quit key.Binding
}

func (k consoleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Quit}
}

func (k consoleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Send, k.Quit}}
}

var consoleKeys = consoleKeyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send command"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// resultMsg carries the outcome of one sent command back into Update
type resultMsg struct {
	line string
	quit bool
}

// ConsoleModel is an interactive prompt for composing control requests:
// add/del/link commands are parsed from the input line, sent over the
// management connection, and their responses appended to the log.
type ConsoleModel struct {
	client *client.Client
	input  textinput.Model
	help   help.Model
	keys   consoleKeyMap
	log    []string
	width  int
}

// NewConsole creates the interactive console over an open management
// connection. The caller owns the connection and closes it after the
// program exits.
func NewConsole(c *client.Client) ConsoleModel {
	input := textinput.New()
	input.Placeholder = "add aa:bb:cc:dd:ee:01 | del <id|mac> | link <from> <to> <snr> | shutdown"
	input.Prompt = "wmedium> "
	input.Focus()

	width, _ := GetTerminalSize()
	return ConsoleModel{
		client: c,
		input:  input,
		help:   help.New(),
		keys:   consoleKeys,
		width:  width,
	}
}

// Init implements tea.Model
func (m ConsoleModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case resultMsg:
		m.log = append(m.log, msg.line)
		if msg.quit {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			m.log = append(m.log, KeyStyle.Render("> ")+line)
			return m, m.send(line)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ConsoleModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("wmedium console"))
	b.WriteString("\n")
	b.WriteString(RenderHorizontalDivider(min(m.width, MaxContentWidth), "─"))
	b.WriteString("\n")

	// Show the tail of the log that fits a small fixed window
	start := 0
	if len(m.log) > 12 {
		start = len(m.log) - 12
	}
	for _, line := range m.log[start:] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// send parses one console command and issues it on the management
// connection. Parsing errors never reach the wire.
func (m ConsoleModel) send(line string) tea.Cmd {
	return func() tea.Msg {
		fields := strings.Fields(line)
		switch fields[0] {
		case "add":
			if len(fields) != 2 {
				return usageMsg("add <mac>")
			}
			addr, err := protocol.ParseMAC(fields[1])
			if err != nil {
				return errorMsg(err)
			}
			resp, err := m.client.AddStation(addr)
			if err != nil {
				return errorMsg(err)
			}
			if resp.Result == protocol.ResultSuccess {
				return resultMsg{line: SuccessStyle.Render(
					fmt.Sprintf("%s added %s with id %d", SuccessMarker, resp.Addr, resp.CreatedID))}
			}
			return responseMsg(resp.Result)

		case "del":
			if len(fields) != 2 {
				return usageMsg("del <id|mac>")
			}
			if id, err := strconv.ParseUint(fields[1], 10, 32); err == nil {
				resp, err := m.client.DeleteByID(uint32(id))
				if err != nil {
					return errorMsg(err)
				}
				return responseMsg(resp.Result)
			}
			addr, err := protocol.ParseMAC(fields[1])
			if err != nil {
				return errorMsg(err)
			}
			resp, err := m.client.DeleteByMAC(addr)
			if err != nil {
				return errorMsg(err)
			}
			return responseMsg(resp.Result)

		case "link":
			if len(fields) != 4 {
				return usageMsg("link <from> <to> <snr>")
			}
			from, err := protocol.ParseMAC(fields[1])
			if err != nil {
				return errorMsg(err)
			}
			to, err := protocol.ParseMAC(fields[2])
			if err != nil {
				return errorMsg(err)
			}
			snr, err := strconv.ParseInt(fields[3], 10, 32)
			if err != nil {
				return errorMsg(fmt.Errorf("invalid snr %q: %w", fields[3], err))
			}
			resp, err := m.client.UpdateLink(from, to, int32(snr))
			if err != nil {
				return errorMsg(err)
			}
			return responseMsg(resp.Result)

		case "shutdown":
			if err := m.client.Shutdown(); err != nil {
				return errorMsg(err)
			}
			return resultMsg{
				line: SuccessStyle.Render(SuccessMarker + " shutdown requested"),
				quit: true,
			}

		default:
			return usageMsg("add | del | link | shutdown | quit")
		}
	}
}

func responseMsg(code protocol.Result) resultMsg {
	return resultMsg{line: resultLine(code)}
}

func errorMsg(err error) resultMsg {
	return resultMsg{line: ErrorStyle.Render(fmt.Sprintf("%s %v", FailureMarker, err))}
}

func usageMsg(usage string) resultMsg {
	return resultMsg{line: WarnStyle.Render("usage: " + usage)}
}

// RunConsole runs the interactive console until the user quits.
func RunConsole(c *client.Client) error {
	p := tea.NewProgram(NewConsole(c))
	_, err := p.Run()
	return err
}

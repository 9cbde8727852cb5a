package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	pathquery "github.com/ritamzico/pathquery"
	"github.com/ritamzico/pathquery/internal/serialization"
)

const helpText = `pathquery interactive REPL

Commands:
  new <name> <field=v1,v2;...>   Create a session over an inline schema
  load <name> <file>             Load a session's schema from a JSON file
  unload <name>                  Remove a session
  list                           List all open sessions
  use <name>                     Set the active session for queries
  help                           Show this help message
  exit / quit                    Exit the REPL

Any other input is treated as a DSL line against the active session.

DSL examples:
  DECLARE SINK hits COUNT
  DECLARE SINK egress_hook HOOK(switch)
  REGISTER PATH INGRESS(switch=s1) ^ INGRESS(switch=s2) SINK hits
  REGISTER PATH (INGRESS(switch=s1) | INGRESS(switch=s2))* SINK hits ENDPATH hits
  COMPILE
`

func parseInlineSchema(spec string) (serialization.Schema, error) {
	schema := serialization.Schema{}
	for _, field := range strings.Split(spec, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		parts := strings.SplitN(field, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed field %q, expected name=v1,v2,...", field)
		}
		name := strings.TrimSpace(parts[0])
		values := strings.Split(parts[1], ",")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}
		schema[name] = values
	}
	if len(schema) == 0 {
		return nil, fmt.Errorf("empty schema")
	}
	return schema, nil
}

func main() {
	sessions := make(map[string]*pathquery.Compiler)
	var active string

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("pathquery: path-query compiler for SDN packet trajectories")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		if active != "" {
			fmt.Printf("[%s]> ", active)
		} else {
			fmt.Print("> ")
		}

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			return

		case "help":
			fmt.Print(helpText)

		case "list":
			if len(sessions) == 0 {
				fmt.Println("(no sessions open)")
			} else {
				for name := range sessions {
					marker := " "
					if name == active {
						marker = "*"
					}
					fmt.Printf("  %s %s\n", marker, name)
				}
			}

		case "new":
			if len(parts) < 3 {
				fmt.Fprintln(os.Stderr, "usage: new <name> <field=v1,v2;...>")
				continue
			}
			name := parts[1]
			schema, err := parseInlineSchema(strings.Join(parts[2:], " "))
			if err != nil {
				fmt.Fprintf(os.Stderr, "error parsing schema: %v\n", err)
				continue
			}
			sessions[name] = pathquery.New(schema)
			if active == "" {
				active = name
			}
			fmt.Printf("created session %q\n", name)

		case "use":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: use <name>")
				continue
			}
			name := parts[1]
			if _, ok := sessions[name]; !ok {
				fmt.Fprintf(os.Stderr, "no session named %q\n", name)
				continue
			}
			active = name
			fmt.Printf("active session set to %q\n", name)

		case "load":
			if len(parts) < 3 {
				fmt.Fprintln(os.Stderr, "usage: load <name> <file>")
				continue
			}
			name, path := parts[1], parts[2]
			compiler, err := pathquery.LoadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error loading %q: %v\n", path, err)
				continue
			}
			sessions[name] = compiler
			if active == "" {
				active = name
			}
			fmt.Printf("loaded session %q from %q\n", name, path)

		case "unload":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: unload <name>")
				continue
			}
			name := parts[1]
			if _, ok := sessions[name]; !ok {
				fmt.Fprintf(os.Stderr, "no session named %q\n", name)
				continue
			}
			delete(sessions, name)
			if active == name {
				active = ""
			}
			fmt.Printf("unloaded %q\n", name)

		default:
			if active == "" {
				fmt.Fprintln(os.Stderr, "no active session, use 'new' or 'load' first")
				continue
			}
			res, err := sessions[active].Exec(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "query error: %v\n", err)
			} else if res != nil {
				b, err := pathquery.MarshalResultJSON(res)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error rendering result: %v\n", err)
					continue
				}
				fmt.Println(string(b))
			}
		}
	}
}

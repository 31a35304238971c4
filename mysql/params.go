package mysql

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidDSN is wrapped by all DSN parse failures.
var ErrInvalidDSN = errors.New("invalid dsn")

// ConnectionParameters holds the parsed connection descriptor.
// Immutable after construction; consumed once by Dial.
type ConnectionParameters struct {
	Host       string
	User       string
	Password   string
	Database   string
	Port       uint32
	UnixSocket string
	Workload   string
}

// EnvLookup resolves environment variables for unset DSN fields.
// Injectable so tests can substitute a fixed environment without
// mutating real process state.
type EnvLookup func(name string) (string, bool)

// OSEnv is the default EnvLookup backed by the process environment.
func OSEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Environment variable fallbacks for DSN fields that were not set.
const (
	envHost     = "MYSQL_HOST"
	envPassword = "MYSQL_PWD"
	envUser     = "MYSQL_USER"
	envDatabase = "MYSQL_DATABASE"
	envSocket   = "MYSQL_UNIX_PORT"
	envPort     = "MYSQL_TCP_PORT"
)

const (
	portMin = 0
	portMax = 65535
)

// ParsePort validates and converts a port string.
func ParsePort(value string) (uint32, error) {
	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid port %q", ErrInvalidDSN, value)
	}
	if port < portMin || port > portMax {
		return 0, fmt.Errorf("%w: invalid port %d - port must be between %d and %d", ErrInvalidDSN, port, portMin, portMax)
	}
	return uint32(port), nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseValue reads the next token starting at *pos: either a bare word
// terminated by space, '=' or end of string, or a double-quoted value in
// which backslash escapes backslash and double-quote.
func parseValue(dsn string, pos *int) (string, bool, error) {
	for *pos < len(dsn) && isSpace(dsn[*pos]) {
		*pos++
	}
	if *pos >= len(dsn) {
		return "", false, nil
	}
	var result []byte
	if dsn[*pos] == '"' {
		*pos++
		foundQuote := false
		for ; *pos < len(dsn); *pos++ {
			c := dsn[*pos]
			if c == '"' {
				foundQuote = true
				*pos++
				break
			}
			if c == '\\' {
				if *pos+1 >= len(dsn) {
					return "", false, fmt.Errorf("%w %q - backslash at end of dsn", ErrInvalidDSN, dsn)
				}
				next := dsn[*pos+1]
				if next != '\\' && next != '"' {
					return "", false, fmt.Errorf("%w %q - backslash can only escape \\ or \"", ErrInvalidDSN, dsn)
				}
				result = append(result, next)
				*pos++
				continue
			}
			result = append(result, c)
		}
		if !foundQuote {
			return "", false, fmt.Errorf("%w %q - unterminated quote", ErrInvalidDSN, dsn)
		}
	} else {
		for ; *pos < len(dsn); *pos++ {
			c := dsn[*pos]
			if c == '=' || isSpace(c) {
				break
			}
			result = append(result, c)
		}
	}
	return string(result), true, nil
}

// ParseDSN parses a space-separated key=value connection descriptor.
// Recognized keys: host, user, passwd/password, db/database, port,
// socket/unix_socket, workload. Unrecognized keys are a hard error.
// Keys not present in the DSN fall back to a fixed environment variable
// per key, resolved through env (OSEnv if nil).
func ParseDSN(dsn string, env EnvLookup) (ConnectionParameters, error) {
	if env == nil {
		env = OSEnv
	}
	var result ConnectionParameters
	set := make(map[string]bool)

	pos := 0
	for pos < len(dsn) {
		key, ok, err := parseValue(dsn, &pos)
		if err != nil {
			return ConnectionParameters{}, err
		}
		if !ok {
			break
		}
		if pos >= len(dsn) || dsn[pos] != '=' {
			return ConnectionParameters{}, fmt.Errorf("%w %q - expected key=value pairs separated by spaces", ErrInvalidDSN, dsn)
		}
		pos++
		value, ok, err := parseValue(dsn, &pos)
		if err != nil {
			return ConnectionParameters{}, err
		}
		if !ok {
			return ConnectionParameters{}, fmt.Errorf("%w %q - expected key=value pairs separated by spaces", ErrInvalidDSN, dsn)
		}

		switch strings.ToLower(key) {
		case "host":
			set["host"] = true
			result.Host = value
		case "user":
			set["user"] = true
			result.User = value
		case "passwd", "password":
			set["password"] = true
			result.Password = value
		case "db", "database":
			set["database"] = true
			result.Database = value
		case "port":
			set["port"] = true
			result.Port, err = ParsePort(value)
			if err != nil {
				return ConnectionParameters{}, err
			}
		case "socket", "unix_socket":
			set["socket"] = true
			result.UnixSocket = value
		case "workload":
			set["workload"] = true
			result.Workload = value
		default:
			return ConnectionParameters{}, fmt.Errorf("%w: unrecognized configuration parameter %q - expected options are host, user, passwd, db, port, socket, and workload", ErrInvalidDSN, key)
		}
	}

	// read options that were not set from environment variables
	if !set["host"] {
		if v, ok := env(envHost); ok {
			result.Host = v
		}
	}
	if !set["password"] {
		if v, ok := env(envPassword); ok {
			result.Password = v
		}
	}
	if !set["user"] {
		if v, ok := env(envUser); ok {
			result.User = v
		}
	}
	if !set["database"] {
		if v, ok := env(envDatabase); ok {
			result.Database = v
		}
	}
	if !set["socket"] {
		if v, ok := env(envSocket); ok {
			result.UnixSocket = v
		}
	}
	if !set["port"] {
		if v, ok := env(envPort); ok {
			port, err := ParsePort(v)
			if err != nil {
				return ConnectionParameters{}, err
			}
			result.Port = port
		}
	}
	return result, nil
}

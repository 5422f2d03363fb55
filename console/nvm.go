package console

import (
	"encoding/hex"
	"strconv"

	"picoboard/core"
	"picoboard/nvm"
)

func (c *Console) registerNVM() {
	c.reg.Register("nvm get", "<type> <key> [strict]", c.needStore(c.handleNVMGet))
	c.reg.Register("nvm set", "<type> <key> <value>", c.needStore(c.handleNVMSet))
	c.reg.Register("nvm gets", "<key> <max>", c.needStore(c.handleNVMGetString))
	c.reg.Register("nvm sets", "<key> <max> <text>", c.needStore(c.handleNVMSetString))
	c.reg.Register("nvm defaults", "", c.needStore(c.handleNVMDefaults))
	c.reg.Register("nvm commit", "", c.needStore(c.handleNVMCommit))
	c.reg.Register("nvm dump", "<key> <n>", c.needStore(c.handleNVMDump))
	c.reg.Register("nvm info", "", c.needStore(c.handleNVMInfo))
}

// needStore rejects NVM commands on a board whose flash failed to open
func (c *Console) needStore(h core.CommandHandler) core.CommandHandler {
	return func(args []string) (string, error) {
		if c.store == nil {
			return "", nvm.ErrNotStarted
		}
		return h(args)
	}
}

// nvm get <type> <key> [strict]
// strict refuses erased (never written) values
func (c *Console) handleNVMGet(args []string) (string, error) {
	if len(args) < 2 || len(args) > 3 || (len(args) == 3 && args[2] != "strict") {
		return "", ErrUsage
	}
	f, ok := fields[args[0]]
	if !ok {
		return "", ErrType
	}
	key, err := parseKey(args[1])
	if err != nil {
		return "", err
	}
	return f.get(c.store, key, len(args) == 2)
}

// nvm set <type> <key> <value>
func (c *Console) handleNVMSet(args []string) (string, error) {
	if len(args) != 3 {
		return "", ErrUsage
	}
	f, ok := fields[args[0]]
	if !ok {
		return "", ErrType
	}
	key, err := parseKey(args[1])
	if err != nil {
		return "", err
	}
	return "", f.set(c.store, key, args[2])
}

// nvm gets <key> <max>
func (c *Console) handleNVMGetString(args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrUsage
	}
	key, err := parseKey(args[0])
	if err != nil {
		return "", err
	}
	max, err := parseUint8(args[1])
	if err != nil {
		return "", err
	}
	s, err := c.store.ReadString(key, max)
	if err != nil {
		return "", err
	}
	return strconv.Quote(s), nil
}

// nvm sets <key> <max> <text>
func (c *Console) handleNVMSetString(args []string) (string, error) {
	if len(args) != 3 {
		return "", ErrUsage
	}
	key, err := parseKey(args[0])
	if err != nil {
		return "", err
	}
	max, err := parseUint8(args[1])
	if err != nil {
		return "", err
	}
	return "", c.store.WriteString(key, args[2], max)
}

func (c *Console) handleNVMDefaults(args []string) (string, error) {
	return "", c.cfg.SetDefaults(c.store)
}

func (c *Console) handleNVMCommit(args []string) (string, error) {
	return "", c.store.Commit()
}

// nvm dump <key> <n>
func (c *Console) handleNVMDump(args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrUsage
	}
	key, err := parseKey(args[0])
	if err != nil {
		return "", err
	}
	n, err := strconv.ParseUint(args[1], 0, 16)
	if err != nil {
		return "", ErrArgument
	}
	b, err := c.store.Dump(key, int(n))
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (c *Console) handleNVMInfo(args []string) (string, error) {
	max, _ := c.store.MaxSize()
	return "began=" + strconv.FormatBool(c.store.Began()) +
		" size=" + strconv.Itoa(c.store.Size()) +
		" max=" + strconv.Itoa(max) +
		" locked=" + strconv.FormatBool(c.store.ChainLocked()), nil
}

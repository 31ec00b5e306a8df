package app

import (
	"testing"

	"github.com/IrineSistiana/seqlist/internal/mlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func Test_rootOpts_apply(t *testing.T) {
	r := require.New(t)
	defer mlog.SetLvl(zerolog.InfoLevel)

	o := &rootOpts{logLvl: "debug"}
	r.NoError(o.apply())
	r.Equal(zerolog.DebugLevel, mlog.Lvl())

	o = &rootOpts{logLvl: "loud"}
	r.Error(o.apply())

	o = &rootOpts{logLvl: "info", pprofServer: "127.0.0.1:0"}
	r.NoError(o.apply())
}

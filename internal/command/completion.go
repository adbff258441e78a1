// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dotctl/dotctl/internal/meta"
)

const bashCompletionScript = `# bash completion for dotctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_dotctl()
{
    local cur prev cmd sub
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "backup doctor lapse palette theme tone transcribe completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    sub=${COMP_WORDS[2]}
    local common="--color -c --output -o --sort -s --titles -t"

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        case "$cmd" in
        doctor|theme)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        esac
    fi

    case "$cmd" in
    backup)
        if [[ ${COMP_CWORD} -eq 2 && "$cur" != -* ]]; then
            COMPREPLY=( $(compgen -W "run schedule" -- "$cur") )
            return 0
        fi
        local opts="--dir --message -m --remote --no-push --s3-bucket --s3-prefix --s3-endpoint --profile --region"
        [[ "$sub" == "schedule" ]] && opts="$opts --every"
        ;;
    doctor)
        local opts="$common --require -r --venv"
        ;;
    lapse)
        local opts="--speed -s --fast -f --fps --output -o"
        if [[ "$cur" != -* ]]; then
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
        fi
        ;;
    palette)
        local opts="--colors -c --output -o --tmux --nvim --all --install --theme-name"
        if [[ "$cur" != -* ]]; then
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
        fi
        ;;
    theme)
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            COMPREPLY=( $(compgen -W "list switch apply diff watch" -- "$cur") )
            return 0
        fi
        case "$sub" in
        list|ls) local opts="$common --target" ;;
        switch)  local opts="--target --no-reload" ;;
        diff)    local opts="--target --color -c" ;;
        watch)   local opts="--target --debounce" ;;
        *)       local opts="--target" ;;
        esac
        ;;
    tone)
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            COMPREPLY=( $(compgen -W "start stop status" -- "$cur") )
            return 0
        fi
        local opts=""
        [[ "$sub" == "start" ]] && opts="--carrier -c --beat -b --duration -d --volume"
        ;;
    transcribe)
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            COMPREPLY=( $(compgen -W "install run" -- "$cur") )
            return 0
        fi
        if [[ "$prev" == "--model" || "$prev" == "-m" ]]; then
            COMPREPLY=( $(compgen -W "tiny base small medium large" -- "$cur") )
            return 0
        fi
        if [[ "$prev" == "--device" ]]; then
            COMPREPLY=( $(compgen -W "auto cpu cuda mps" -- "$cur") )
            return 0
        fi
        case "$sub" in
        install) local opts="--venv --rc --package" ;;
        *)
            local opts="--venv --model -m --device --timestamps -t --verbose --batch -b --output -o"
            if [[ "$cur" != -* ]]; then
                COMPREPLY=( $(compgen -f -X '!*.mp3' -- "$cur") $(compgen -d -- "$cur") )
                return 0
            fi
            ;;
        esac
        ;;
    completion)
        COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
        return 0
        ;;
    *)
        local opts=""
        ;;
    esac

    COMPREPLY=( $(compgen -W "$opts --help -h" -- "$cur") )
    return 0
}

complete -F _dotctl dotctl
`

const zshCompletionScript = `#compdef dotctl

_dotctl() {
  local -a cmds
  cmds=(
    'backup:commit and push the dotfiles repository'
    'doctor:check which external tools are installed'
    'lapse:turn a video into a time-lapse'
    'palette:generate terminal color themes from a wallpaper'
    'theme:list, switch and reload terminal themes'
    'tone:play a binaural beat in the background'
    'transcribe:transcribe MP3 files with whisper'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'dotctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    backup)
      _arguments -C \
        '--dir[dotfiles repository]:dir:_directories' \
        '(-m --message)'{-m,--message}'[commit message]:message' \
        '--remote[remote to push to]:remote' \
        '--no-push[commit without pushing]' \
        '--s3-bucket[snapshot bucket]:bucket' \
        '--s3-prefix[snapshot key prefix]:prefix' \
        '--s3-endpoint[S3-compatible endpoint]:url' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '--every[interval between backups]:duration' \
        '1::action:(run schedule)'
      ;;
    doctor)
      _arguments -C \
        $common \
        '(-r --require)'{-r,--require}'[fail when missing]:tools' \
        '--venv[whisper virtual environment]:dir:_directories'
      ;;
    lapse)
      _arguments -C \
        '(-s --speed)'{-s,--speed}'[speed-up factor]:speed' \
        '(-f --fast)'{-f,--fast}'[fast encoder preset]' \
        '--fps[output frame rate]:fps' \
        '(-o --output)'{-o,--output}'[output file]:file:_files' \
        '1:video:_files'
      ;;
    palette)
      _arguments -C \
        '(-c --colors)'{-c,--colors}'[number of colors]:colors' \
        '(-o --output)'{-o,--output}'[kitty output file]:file:_files' \
        '--tmux[generate tmux theme]' \
        '--nvim[generate neovim colorscheme]' \
        '--all[generate all themes]' \
        '--install[install kitty theme]' \
        '--theme-name[theme name]:name' \
        '1:image:_files -g "*.(png|jpg|jpeg|gif|webp)"'
      ;;
    theme)
      _arguments -C \
        $common \
        '--target[theme target]:target:(kitty tmux)' \
        '--no-reload[do not reload]' \
        '--debounce[quiet period]:duration' \
        '1:action:(list switch apply diff watch)' \
        '*::theme:_files'
      ;;
    tone)
      _arguments -C \
        '(-c --carrier)'{-c,--carrier}'[carrier Hz]:hz' \
        '(-b --beat)'{-b,--beat}'[beat Hz]:hz' \
        '(-d --duration)'{-d,--duration}'[duration]:duration' \
        '--volume[volume 0-1]:volume' \
        '1:action:(start stop status)'
      ;;
    transcribe)
      _arguments -C \
        '--venv[whisper virtual environment]:dir:_directories' \
        '--rc[shell rc file]:file:_files' \
        '--package[pip package]:package' \
        '(-m --model)'{-m,--model}'[whisper model]:model:(tiny base small medium large)' \
        '--device[compute device]:device:(auto cpu cuda mps)' \
        '(-t --timestamps)'{-t,--timestamps}'[include timestamps]' \
        '--verbose[whisper prints segments]' \
        '(-b --batch)'{-b,--batch}'[concatenate transcripts]' \
        '(-o --output)'{-o,--output}'[output file]:file:_files' \
        '1:action:(install run)' \
        '*:mp3:_files -g "*.mp3"'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _dotctl dotctl
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}

	w := stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			return usageErrorf("usage: dotctl completion [bash|zsh]")
		}
	default:
		return usageErrorf("unsupported shell %q (bash, zsh)", shell)
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "dotctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}

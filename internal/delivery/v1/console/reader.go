package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

const maxLineLen = 4096

type lineResult struct {
	line string
	err  error
}

// lineReader читает строки в отдельной горутине, чтобы ожидание ввода можно было прервать через ctx.
type lineReader struct {
	lines chan lineResult
	done  chan struct{}
	once  sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
	go lr.pump(r)

	return lr
}

func (lr *lineReader) pump(r io.Reader) {
	defer close(lr.lines)

	br := bufio.NewReaderSize(r, maxLineLen)
	for {
		line, err := readLine(br)
		if err != nil {
			select {
			case lr.lines <- lineResult{err: err}:
			case <-lr.done:
			}
			return
		}

		select {
		case lr.lines <- lineResult{line: line}:
		case <-lr.done:
			return
		}
	}
}

// readLine читает строку целиком. Строка длиннее maxLineLen дочитывается до конца
// и возвращается пустой, чтобы текущий вопрос был задан повторно.
func readLine(br *bufio.Reader) (string, error) {
	var (
		buf     []byte
		tooLong bool
		partial bool
	)

	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			// последняя строка без перевода строки закончилась ровно на границе буфера
			if partial && errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}
		partial = isPrefix

		if !tooLong {
			if len(buf)+len(chunk) > maxLineLen {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", nil
	}

	return strings.TrimSpace(string(buf)), nil
}

// ReadLine возвращает следующую строку без пробелов по краям, io.EOF в конце ввода или ошибку ctx.
func (lr *lineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// Close останавливает чтение. Повторный вызов безопасен.
func (lr *lineReader) Close() {
	lr.once.Do(func() { close(lr.done) })
}

package lexer

// Date is a parsed `@YYYY-MM-DD[THH:MM[:SS[.fff]][Z|±HH:MM|±HHMM]]` literal.
// The original source text is retained verbatim in Raw so that downstream
// consumers can preserve exact precision instead of being forced through a
// canonical instant; the individual fields are also decoded for callers
// (like the schema validator's `eq` enum comparison, via EpochSeconds)
// that need to reason about the value.
type Date struct {
	Raw string

	Year, Month, Day int

	HasTime           bool
	Hour, Min, Sec    int
	Nanos             int // sub-second, nanoseconds
	HasFractionDigits int

	HasZone        bool
	ZoneIsUTC      bool // "Z"
	ZoneOffsetMins int  // signed, minutes east of UTC; meaningless if !HasZone
}

func digitsN(src []byte, offset, n int) (int, bool) {
	if offset+n > len(src) {
		return 0, false
	}
	v := 0
	for i := 0; i < n; i++ {
		b := src[offset+i]
		if b < '0' || b > '9' {
			return 0, false
		}
		v = v*10 + int(b-'0')
	}
	return v, true
}

// ReadDate parses a date literal. c must be positioned right after the
// leading '@'. On success it returns the decoded Date and leaves the cursor
// past the last consumed character; on failure it returns an error whose
// span covers the '@' through the last character consumed while attempting
// the match.
func ReadDate(c *Cursor, atPos int) (Date, error) {
	start := c.Pos()

	year, ok := digitsN(c.src, c.pos, 4)
	if !ok {
		return Date{}, lexErr(atPos, c.Pos(), "expected 4-digit year")
	}
	c.pos += 4
	if !c.Consume("-") {
		return Date{}, lexErr(atPos, c.Pos(), "expected '-' after year")
	}
	month, ok := digitsN(c.src, c.pos, 2)
	if !ok {
		return Date{}, lexErr(atPos, c.Pos(), "expected 2-digit month")
	}
	c.pos += 2
	if !c.Consume("-") {
		return Date{}, lexErr(atPos, c.Pos(), "expected '-' after month")
	}
	day, ok := digitsN(c.src, c.pos, 2)
	if !ok {
		return Date{}, lexErr(atPos, c.Pos(), "expected 2-digit day")
	}
	c.pos += 2

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, lexErr(atPos, c.Pos(), "date field out of range")
	}

	d := Date{Year: year, Month: month, Day: day}

	if c.Peek() == 'T' {
		c.Advance()
		d.HasTime = true

		hour, ok := digitsN(c.src, c.pos, 2)
		if !ok {
			return Date{}, lexErr(atPos, c.Pos(), "expected 2-digit hour")
		}
		c.pos += 2
		if !c.Consume(":") {
			return Date{}, lexErr(atPos, c.Pos(), "expected ':' after hour")
		}
		minute, ok := digitsN(c.src, c.pos, 2)
		if !ok {
			return Date{}, lexErr(atPos, c.Pos(), "expected 2-digit minute")
		}
		c.pos += 2
		if hour > 23 || minute > 59 {
			return Date{}, lexErr(atPos, c.Pos(), "time field out of range")
		}
		d.Hour, d.Min = hour, minute

		if c.Peek() == ':' {
			save := c.Pos()
			c.Advance()
			sec, ok := digitsN(c.src, c.pos, 2)
			if !ok {
				c.SetPos(save)
			} else {
				c.pos += 2
				if sec > 60 {
					return Date{}, lexErr(atPos, c.Pos(), "seconds field out of range")
				}
				d.Sec = sec

				if c.Peek() == '.' {
					fracStart := c.Pos() + 1
					j := fracStart
					for j < len(c.src) && isDigitASCII[c.src[j]] {
						j++
					}
					if j > fracStart {
						fracDigits := c.Slice(fracStart, j)
						nanos := 0
						for i := 0; i < 9; i++ {
							nanos *= 10
							if i < len(fracDigits) {
								nanos += int(fracDigits[i] - '0')
							}
						}
						d.Nanos = nanos
						d.HasFractionDigits = len(fracDigits)
						c.pos = j
					}
				}
			}
		}

		switch c.Peek() {
		case 'Z':
			c.Advance()
			d.HasZone = true
			d.ZoneIsUTC = true
		case '+', '-':
			sign := 1
			if c.Peek() == '-' {
				sign = -1
			}
			c.Advance()
			zh, ok := digitsN(c.src, c.pos, 2)
			if !ok {
				return Date{}, lexErr(atPos, c.Pos(), "expected 2-digit zone hour")
			}
			c.pos += 2
			c.Consume(":")
			zm, ok := digitsN(c.src, c.pos, 2)
			if !ok {
				return Date{}, lexErr(atPos, c.Pos(), "expected 2-digit zone minute")
			}
			c.pos += 2
			d.HasZone = true
			d.ZoneOffsetMins = sign * (zh*60 + zm)
		}
	}

	d.Raw = c.Slice(start, c.Pos())
	return d, nil
}

// EpochSeconds returns a UTC-instant comparison key: midnight UTC for a
// date-only value, or the exact instant (adjusted by zone offset) when a
// time is present. Used by the schema validator's `eq` (enum) comparison,
// which compares dates by instant rather than by raw source text.
func (d Date) EpochSeconds() int64 {
	days := daysFromCivil(d.Year, d.Month, d.Day)
	secs := days * 86400
	if d.HasTime {
		secs += int64(d.Hour)*3600 + int64(d.Min)*60 + int64(d.Sec)
		if d.HasZone && !d.ZoneIsUTC {
			secs -= int64(d.ZoneOffsetMins) * 60
		}
	}
	return secs
}

// daysFromCivil converts a y-m-d civil date to a day count relative to the
// Unix epoch, using Howard Hinnant's days-from-civil algorithm (proleptic
// Gregorian, matches time.Date for historical and future dates alike).
func daysFromCivil(y, m, d int) int64 {
	yy := int64(y)
	if m <= 2 {
		yy--
	}
	era := yy
	if yy < 0 {
		era -= 399
	}
	era /= 400
	yoe := yy - era*400
	var mp int64
	if int64(m) > 2 {
		mp = int64(m) - 3
	} else {
		mp = int64(m) + 9
	}
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

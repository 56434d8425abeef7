// sources — загрузка списков сохранённых запросов.
//
// Два входа: ручной список (строка — URL поиска, поддерживаются пустые
// строки и комментарии «#») и кураторский список с метаданными
// (tab-separated: URL, ориентир цены, идентификатор группы). Итог — один
// упорядоченный список: сначала ручные записи, затем кураторские; порядок
// значим — по нему работает возобновление обхода.
package sources

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pribylovaa/go-market-feed/internal/models"
)

// Load читает оба списка. Пустой путь означает «списка нет».
func Load(manualPath, curatedPath string) ([]models.SearchQuery, error) {
	const op = "sources.Load"

	var queries []models.SearchQuery

	if manualPath != "" {
		manual, err := readManual(manualPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		queries = append(queries, manual...)
	}

	if curatedPath != "" {
		curated, err := readCurated(curatedPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		queries = append(queries, curated...)
	}

	return queries, nil
}

// readManual — построчный список URL.
func readManual(path string) ([]models.SearchQuery, error) {
	const op = "sources.readManual"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	var out []models.SearchQuery

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		out = append(out, models.SearchQuery{Spec: line})
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// readCurated — tab-separated список с метаданными. Файл генерируется
// машинно, поэтому искажённая строка — ошибка, а не пропуск.
func readCurated(path string) ([]models.SearchQuery, error) {
	const op = "sources.readCurated"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	var out []models.SearchQuery

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++

		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		q := models.SearchQuery{Spec: fields[0]}
		if q.Spec == "" {
			return nil, fmt.Errorf("%s: line %d: empty query spec", op, lineNo)
		}

		if len(fields) > 1 && fields[1] != "" {
			price, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: reference price: %w", op, lineNo, err)
			}
			q.ReferencePrice = price
		}

		if len(fields) > 2 && fields[2] != "" {
			group, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: group id: %w", op, lineNo, err)
			}
			q.GroupID = group
		}

		out = append(out, q)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

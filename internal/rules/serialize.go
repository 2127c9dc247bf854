package rules

import "strings"

// Serialize renders the RuleSet back into rule file text.
// Parsing the output yields an equivalent RuleSet (same classification
// outcomes); comments from the original file are not preserved.
func (rs *RuleSet) Serialize() string {
	var b strings.Builder

	for _, cat := range rs.categories {
		b.WriteString(cat.Name)
		b.WriteString(": ")
		b.WriteString(strings.Join(cat.Extensions, ", "))
		b.WriteString("\n")
	}

	if exts := rs.IgnoredExtensions(); len(exts) > 0 {
		b.WriteString("\nignore: ")
		b.WriteString(strings.Join(exts, ", "))
		b.WriteString("\n")
	}
	for _, p := range rs.ignorePaths {
		b.WriteString("ignore_path: ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	for _, d := range rs.archiveDirs {
		b.WriteString("archive_dir: ")
		b.WriteString(d)
		b.WriteString("\n")
	}

	return b.String()
}

// Default returns the stock rule file written by `fastsort rules init`.
func Default() string {
	return `# fastsort rule file
# Category format: FolderName: extension1, extension2, ...

# Archives
archive_documents: pdf, doc, docx, txt, odf, xls, xlsx, ppt, pptx, md
archive_pictures: png, jpeg, jpg, gif, bmp, svg, webp, psd, tiff
archive_videos: mp4, avi, mkv, mov, flv, wmv, webm, mpeg, mpg
archive_music: mp3, wav, flac, aac, ogg, m4a, wma
archive_compressed: zip, rar, 7z, tar, gz, bz2, xz, iso
archive_scripts: py, js, ts, php, java, cpp, c, h, cs, rb

# Installers
installer_windows: exe, msi
installer_linux: deb, rpm

# Data
archive_data: json, xml, csv, sql, db

# Other
archive_books: epub, mobi, chm
archive_fonts: ttf, otf, woff, woff2

# Extensions to skip entirely
ignore: tmp, log, cache

# Paths to leave untouched (equal to or nested under these)
# ignore_path: path1, path2

# Top-level directories that are already organized
# archive_dir: OldDownloads
`
}
